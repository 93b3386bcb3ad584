package model

import "time"

// User is an administrative account whose role gates every protected
// endpoint. Authentication itself is delegated to the external verifier —
// this table only stores the role (and branch scope) looked up after the
// token resolves to a user id.
type User struct {
	ID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	FullName string  `json:"full_name"`
	Role     string  `gorm:"type:varchar(20);not null" json:"role"`
	BranchID *string `gorm:"type:uuid" json:"branch_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }
