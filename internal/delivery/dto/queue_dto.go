package dto

// QueueTrackingResponse is one poll of the simulated live queue for a token,
// combined with the appointment context the tracker page displays.
type QueueTrackingResponse struct {
	TokenNumber          string `json:"token_number"`
	DepartmentID         string `json:"department_id"`
	DepartmentName       string `json:"department_name"`
	Doctor               string `json:"doctor"`
	TimeSlot             string `json:"time_slot"`
	CurrentPosition      int    `json:"current_position"`
	EstimatedWaitMinutes int    `json:"estimated_wait_minutes"`
	Status               string `json:"status"`
}

type DepartmentQueueResponse struct {
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Pending        int    `json:"pending"`
	AvgWaitMinutes int    `json:"avg_wait_minutes"`
}

// QueueSummaryResponse is the live tracker's department board.
type QueueSummaryResponse struct {
	TotalPatients    int                       `json:"total_patients"`
	CurrentlyServing string                    `json:"currently_serving,omitempty"`
	Departments      []DepartmentQueueResponse `json:"departments"`
}
