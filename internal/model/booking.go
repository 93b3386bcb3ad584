package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the closed lifecycle of a customer booking.
// Transitions: pending_payment → pending_review (payment notified) →
// confirmed | rejected; queue assignment puts the booking into queued.
type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "pending_payment"
	BookingPendingReview  BookingStatus = "pending_review"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingRejected       BookingStatus = "rejected"
	BookingQueued         BookingStatus = "queued"
)

// Booking is a customer service reservation. Created unauthenticated via the
// public booking endpoint; status advances only through the payment flow or
// explicit queue assignment.
type Booking struct {
	ID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	// CodeHuman is the branch- and time-scoped display code
	// (SP-<BRANCH>-<YYMM>-<4 hex>), shown to the customer for tracking.
	CodeHuman   string          `gorm:"column:code_human;uniqueIndex;not null" json:"code_human"`
	Status      BookingStatus   `gorm:"type:varchar(20);not null;default:'pending_payment'" json:"status"`
	BranchID    string          `gorm:"type:uuid;index;not null" json:"branch_id"`
	GuestName   string          `gorm:"not null" json:"guest_name"`
	GuestPhone  *string         `json:"guest_phone,omitempty"`
	PlateNumber *string         `json:"plate_number,omitempty"`
	VehicleType *string         `json:"vehicle_type,omitempty"`
	Color       *string         `json:"color,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_price"`
	// QueueNo is assigned by the assign_queue_for_booking DB function
	QueueNo *int `gorm:"column:queue_no" json:"queue_no,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// WorkProgress is an append-only progress note for a booking, written by
// technicians and surfaced on the public status endpoint.
type WorkProgress struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BookingID string    `gorm:"type:uuid;index;not null" json:"booking_id"`
	Status    string    `gorm:"type:varchar(30);not null" json:"status"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (WorkProgress) TableName() string { return "work_progress" }
