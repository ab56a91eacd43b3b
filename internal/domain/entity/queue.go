package entity

// QueueStatus represents a token's place in the simulated live queue
type QueueStatus string

const (
	QueueStatusInQueue QueueStatus = "in_queue"
	QueueStatusNext    QueueStatus = "next"
	QueueStatusCalled  QueueStatus = "called"
)

// QueueSnapshot is the ephemeral result of one queue poll. It is recomputed
// on every poll and never persisted; CurrentPosition and EstimatedWaitMinutes
// are non-increasing across successive polls of the same token.
type QueueSnapshot struct {
	TokenNumber          string      `json:"token_number"`
	CurrentPosition      int         `json:"current_position"`
	EstimatedWaitMinutes int         `json:"estimated_wait_minutes"`
	Status               QueueStatus `json:"status"`
}

// DepartmentQueue summarizes pending load for one department, shown on the
// live tracker board.
type DepartmentQueue struct {
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Pending        int    `json:"pending"`
	AvgWaitMinutes int    `json:"avg_wait_minutes"`
}
