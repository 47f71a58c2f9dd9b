package model

import "time"

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	// Verified is meaningful only for doctors; patients and admins keep the
	// zero value.
	Verified    bool
	WorkingDays []string
	Slots       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	ID         string `json:"id"`
	PatientID  string `json:"patient_id"`
	ProviderID string `json:"provider_id"`
	// Date is the calendar day in the server's reference time zone,
	// formatted as DateLayout. Slot is a label from the provider's grid.
	Date      string    `json:"date"`
	Slot      string    `json:"slot"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const DateLayout = "2006-01-02"

// DefaultWorkingDays and DefaultSlots seed a doctor's weekly pattern at
// registration. Slot order is canonical: availability responses and the
// booking UI both rely on it.
var (
	DefaultWorkingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	DefaultSlots       = []string{"09:00", "10:00", "11:00", "12:00", "14:00", "15:00", "16:00"}
)

var weekdays = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// ParseWeekday maps a stored weekday name to time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	d, ok := weekdays[name]
	return d, ok
}
