package entity

import "strings"

// Department is a fixed catalog entry. The pilot hospital runs five
// departments, each with a fixed doctor list; the catalog lives in code,
// not the database.
type Department struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Doctors []string `json:"doctors"`
}

var departments = []Department{
	{ID: "general", Name: "General Medicine", Doctors: []string{"Dr. Sarah Wilson", "Dr. Mike Johnson"}},
	{ID: "cardiology", Name: "Cardiology", Doctors: []string{"Dr. Robert Chen", "Dr. Lisa Anderson"}},
	{ID: "orthopedics", Name: "Orthopedics", Doctors: []string{"Dr. James Miller", "Dr. Emily Davis"}},
	{ID: "pediatrics", Name: "Pediatrics", Doctors: []string{"Dr. Anna Smith", "Dr. David Wilson"}},
	{ID: "dermatology", Name: "Dermatology", Doctors: []string{"Dr. Maria Garcia", "Dr. Tom Brown"}},
}

// Bookable half-hour slots: two sessions, morning and afternoon.
var timeSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM",
}

// Departments returns the full department catalog
func Departments() []Department {
	return departments
}

// FindDepartment looks up a department by its catalog ID
func FindDepartment(id string) (Department, bool) {
	for _, d := range departments {
		if d.ID == id {
			return d, true
		}
	}
	return Department{}, false
}

// HasDoctor checks whether the named doctor belongs to this department
func (d Department) HasDoctor(name string) bool {
	for _, doc := range d.Doctors {
		if doc == name {
			return true
		}
	}
	return false
}

// TokenInitial returns the single uppercase letter used as the token prefix
// for this department, e.g. "C" for cardiology.
func (d Department) TokenInitial() string {
	return strings.ToUpper(d.ID[:1])
}

// TimeSlots returns the bookable time slot enumeration
func TimeSlots() []string {
	return timeSlots
}

// IsValidTimeSlot checks whether slot is one of the bookable slots
func IsValidTimeSlot(slot string) bool {
	for _, s := range timeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
