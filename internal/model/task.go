package model

import "time"

// Task is a unit of workshop work attached to a booking, assigned to a
// technician. Status and progress notes are updated only by technicians.
type Task struct {
	ID         string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingID  string  `gorm:"type:uuid;index;not null" json:"booking_id"`
	Title      string  `gorm:"not null" json:"title"`
	Status     string  `gorm:"type:varchar(30);not null;default:'pending'" json:"status"`
	AssignedTo *string `gorm:"type:uuid" json:"assigned_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }
