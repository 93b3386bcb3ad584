package model

import "time"

// StaffMember is a workshop employee record (managers, technicians).
type StaffMember struct {
	ID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Role     string  `gorm:"type:varchar(20);not null" json:"role"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	BranchID *string `gorm:"type:uuid" json:"branch_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (StaffMember) TableName() string { return "staff" }
