package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus: pending_review → confirmed | rejected.
type PaymentStatus string

const (
	PaymentPendingReview PaymentStatus = "pending_review"
	PaymentConfirmed     PaymentStatus = "confirmed"
	PaymentRejected      PaymentStatus = "rejected"
)

// Payment records a customer transfer notification against a booking.
// Confirmation happens exclusively through the verify_payment DB function,
// which atomically assigns the booking's queue number.
type Payment struct {
	ID        string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingID string          `gorm:"type:uuid;index;not null" json:"booking_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method    string          `gorm:"type:varchar(30);not null;default:'manual_transfer'" json:"method"`
	// ProofPath is the object-storage path of the uploaded transfer proof
	ProofPath  *string       `json:"proof_path,omitempty"`
	Status     PaymentStatus `gorm:"type:varchar(20);not null;default:'pending_review'" json:"status"`
	Notes      *string       `json:"notes,omitempty"`
	VerifiedBy *string       `gorm:"type:uuid" json:"verified_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

func (Payment) TableName() string { return "payments" }
