// Package store is the single data-access layer behind every handler. It is
// backed either by a live postgres datastore or by read-only JSON fixture
// snapshots, selected once at process start — handlers cannot tell the two
// apart through the interface.
package store

import (
	"context"
	"errors"

	"github.com/FMG-lab/surya-painting/internal/model"
)

// ErrNotFound is returned when a referenced entity does not exist. Both
// implementations map their internal misses onto this sentinel so handlers
// can translate it to 404 uniformly.
var ErrNotFound = errors.New("not found")

// BranchUpdate carries a partial branch update; nil fields are left as-is.
type BranchUpdate struct {
	Name     *string
	Code     *string
	Address  *string
	Capacity *int
}

// BookingReview is the manager-facing review row derived from payments
// awaiting verification.
type BookingReview struct {
	ID          *string `json:"id"`
	BookingCode *string `json:"booking_code"`
	Status      string  `json:"status"`
}

// Store exposes every datastore operation the handlers need. Live mode maps
// each call to one round-trip (queries or stored-function invocations);
// fixture mode serves snapshots and synthesizes non-persistent writes.
type Store interface {
	// Branches
	ListBranches(ctx context.Context) ([]model.Branch, error)
	GetBranch(ctx context.Context, idOrCode string) (*model.Branch, error)
	CreateBranch(ctx context.Context, b *model.Branch) error
	UpdateBranch(ctx context.Context, id string, upd BranchUpdate) (*model.Branch, error)
	DeleteBranch(ctx context.Context, id string) error

	// Bookings
	CreateBooking(ctx context.Context, b *model.Booking) error
	GetBooking(ctx context.Context, idOrCode string) (*model.Booking, error)
	ListWorkProgress(ctx context.Context, bookingID string) ([]model.WorkProgress, error)
	ListBookingReviews(ctx context.Context) ([]BookingReview, error)

	// Queue assignment / payment verification — opaque atomic operations
	// owned by the datastore; results are passed through unchanged.
	AssignQueue(ctx context.Context, bookingID string) (*int, error)
	VerifyPayment(ctx context.Context, paymentID, verifierID string) (*int, error)

	// Payments
	CreatePayment(ctx context.Context, p *model.Payment) error
	GetPayment(ctx context.Context, id string) (*model.Payment, error)

	// Staff
	ListStaff(ctx context.Context) ([]model.StaffMember, error)
	CreateStaff(ctx context.Context, s *model.StaffMember) error

	// Tasks
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateWorkProgress(ctx context.Context, wp *model.WorkProgress) error

	// Users — role/branch lookup for the credential resolver
	GetUser(ctx context.Context, id string) (*model.User, error)
}
