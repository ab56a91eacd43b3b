package entity

// Session role constants. The pilot has exactly two kinds of session:
// registered patients and the single configured hospital administrator.
const (
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

// Permissions granted to the admin session
var AdminPermissions = []string{"view_appointments", "manage_patients", "view_analytics"}
