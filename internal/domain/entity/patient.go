package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Patient represents a registered patient identity
type Patient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientCode string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"patient_code"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Mobile      string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"mobile"`
	Email       string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Age         int       `gorm:"not null" json:"age"`
	Gender      string    `gorm:"type:varchar(10);not null" json:"gender"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// NewPatientCode derives a human-readable patient code from the registration
// time, e.g. SC1756712345123. The code is what patients quote at the front
// desk; the UUID remains the primary key. The full millisecond timestamp is
// kept so codes never wrap; only same-millisecond registrations collide, and
// the unique constraint catches those.
func NewPatientCode(at time.Time) string {
	return fmt.Sprintf("SC%d", at.UnixMilli())
}
