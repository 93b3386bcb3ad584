package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/FMG-lab/surya-painting/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// fixtureStore serves static JSON snapshots when no datastore is
// configured. Reads scan the snapshots; writes synthesize a plausible
// record without persisting it — a subsequent list/get will NOT return it.
// That is intentional: fixture mode exists to make individual handlers
// deterministically testable in isolation, not to simulate a consistent
// database across calls.
type fixtureStore struct {
	branches []model.Branch
	bookings []model.Booking
	payments []model.Payment
	staff    []model.StaffMember
	tasks    []model.Task
}

// NewFixture loads the snapshot files from dir. A missing or unreadable
// file degrades to an empty snapshot rather than failing startup.
func NewFixture(dir string) Store {
	s := &fixtureStore{}
	loadFixture(dir, "branches.json", &s.branches)
	loadFixture(dir, "bookings.json", &s.bookings)
	loadFixture(dir, "payments.json", &s.payments)
	loadFixture(dir, "staff.json", &s.staff)
	loadFixture(dir, "tasks.json", &s.tasks)
	return s
}

func loadFixture(dir, name string, out interface{}) {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		log.Debug().Str("fixture", name).Err(err).Msg("fixture not loaded")
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn().Str("fixture", name).Err(err).Msg("fixture unreadable, serving empty snapshot")
	}
}

// ── Branches ──────────────────────────────────────────────────────────────────

func (s *fixtureStore) ListBranches(_ context.Context) ([]model.Branch, error) {
	return s.branches, nil
}

func (s *fixtureStore) GetBranch(_ context.Context, idOrCode string) (*model.Branch, error) {
	for i := range s.branches {
		if s.branches[i].ID == idOrCode || s.branches[i].Code == idOrCode {
			b := s.branches[i]
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fixtureStore) CreateBranch(_ context.Context, b *model.Branch) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	return nil
}

func (s *fixtureStore) UpdateBranch(_ context.Context, id string, upd BranchUpdate) (*model.Branch, error) {
	// Echo a plausible updated record; the snapshot itself never changes.
	b := model.Branch{ID: id, Capacity: 1, UpdatedAt: time.Now()}
	if existing, err := s.GetBranch(context.Background(), id); err == nil {
		b = *existing
	}
	if upd.Name != nil {
		b.Name = *upd.Name
	}
	if upd.Code != nil {
		b.Code = *upd.Code
	}
	if upd.Address != nil {
		b.Address = upd.Address
	}
	if upd.Capacity != nil {
		b.Capacity = *upd.Capacity
	}
	return &b, nil
}

func (s *fixtureStore) DeleteBranch(_ context.Context, _ string) error {
	return nil
}

// ── Bookings ──────────────────────────────────────────────────────────────────

func (s *fixtureStore) CreateBooking(_ context.Context, b *model.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	return nil
}

func (s *fixtureStore) GetBooking(_ context.Context, idOrCode string) (*model.Booking, error) {
	for i := range s.bookings {
		if s.bookings[i].ID == idOrCode || s.bookings[i].CodeHuman == idOrCode {
			b := s.bookings[i]
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fixtureStore) ListWorkProgress(_ context.Context, bookingID string) ([]model.WorkProgress, error) {
	// The snapshot carries no progress rows; report the initial state so the
	// public status page has a sensible timeline.
	note := "Menunggu pembayaran"
	return []model.WorkProgress{{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Status:    string(model.BookingPendingPayment),
		Note:      &note,
		CreatedAt: time.Now(),
	}}, nil
}

func (s *fixtureStore) ListBookingReviews(_ context.Context) ([]BookingReview, error) {
	return reviewsFromPayments(s.payments), nil
}

// ── Queue assignment / payment verification ───────────────────────────────────

// Queue numbers in fixture mode are minted from snapshot position so that
// repeated calls stay deterministic.

func (s *fixtureStore) AssignQueue(_ context.Context, bookingID string) (*int, error) {
	for i := range s.bookings {
		if s.bookings[i].ID == bookingID {
			n := i + 1
			return &n, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
}

func (s *fixtureStore) VerifyPayment(_ context.Context, paymentID, _ string) (*int, error) {
	for i := range s.payments {
		if s.payments[i].ID == paymentID {
			n := i + 1
			return &n, nil
		}
	}
	return nil, fmt.Errorf("payment %s: %w", paymentID, ErrNotFound)
}

// ── Payments ──────────────────────────────────────────────────────────────────

func (s *fixtureStore) CreatePayment(_ context.Context, p *model.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	return nil
}

func (s *fixtureStore) GetPayment(_ context.Context, id string) (*model.Payment, error) {
	for i := range s.payments {
		if s.payments[i].ID == id {
			p := s.payments[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// ── Staff ─────────────────────────────────────────────────────────────────────

func (s *fixtureStore) ListStaff(_ context.Context) ([]model.StaffMember, error) {
	return s.staff, nil
}

func (s *fixtureStore) CreateStaff(_ context.Context, st *model.StaffMember) error {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	st.CreatedAt = time.Now()
	return nil
}

// ── Tasks ─────────────────────────────────────────────────────────────────────

func (s *fixtureStore) ListTasks(_ context.Context) ([]model.Task, error) {
	return s.tasks, nil
}

func (s *fixtureStore) CreateWorkProgress(_ context.Context, wp *model.WorkProgress) error {
	if wp.ID == "" {
		wp.ID = uuid.NewString()
	}
	wp.CreatedAt = time.Now()
	return nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

func (s *fixtureStore) GetUser(_ context.Context, _ string) (*model.User, error) {
	// Live role lookup only happens behind a live verifier, which implies a
	// live datastore; the snapshot carries no admin accounts.
	return nil, ErrNotFound
}
