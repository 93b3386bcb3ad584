package model

import "time"

// Branch is a physical workshop location. Write access is restricted to
// super_admin; branch_manager reads are scoped to their own branch.
type Branch struct {
	ID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	// Code is the short display code embedded in human booking codes (e.g. "JKT")
	Code     string  `gorm:"uniqueIndex;not null" json:"code"`
	Name     string  `gorm:"not null" json:"name"`
	Address  *string `json:"address,omitempty"`
	Capacity int     `gorm:"not null;default:1" json:"capacity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Branch) TableName() string { return "branches" }
