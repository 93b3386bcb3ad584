package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FMG-lab/surya-painting/internal/auth"
	"github.com/FMG-lab/surya-painting/internal/model"
	"github.com/FMG-lab/surya-painting/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// stubStore is an in-memory Store for handler tests. Unlike the fixture
// store it persists creates so assertions can inspect what a handler wrote.
type stubStore struct {
	branches []model.Branch
	bookings []model.Booking
	payments []model.Payment
	staff    []model.StaffMember
	tasks    []model.Task
	progress []model.WorkProgress

	verifiers []string // verifier ids passed to VerifyPayment
}

func (s *stubStore) ListBranches(context.Context) ([]model.Branch, error) {
	return s.branches, nil
}

func (s *stubStore) GetBranch(_ context.Context, idOrCode string) (*model.Branch, error) {
	for i := range s.branches {
		if s.branches[i].ID == idOrCode || s.branches[i].Code == idOrCode {
			b := s.branches[i]
			return &b, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *stubStore) CreateBranch(_ context.Context, b *model.Branch) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	s.branches = append(s.branches, *b)
	return nil
}

func (s *stubStore) UpdateBranch(_ context.Context, id string, upd store.BranchUpdate) (*model.Branch, error) {
	b, err := s.GetBranch(context.Background(), id)
	if err != nil {
		return nil, err
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
	return b, nil
}

func (s *stubStore) DeleteBranch(_ context.Context, id string) error {
	for i := range s.branches {
		if s.branches[i].ID == id {
			s.branches = append(s.branches[:i], s.branches[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *stubStore) CreateBooking(_ context.Context, b *model.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *stubStore) GetBooking(_ context.Context, idOrCode string) (*model.Booking, error) {
	for i := range s.bookings {
		if s.bookings[i].ID == idOrCode || s.bookings[i].CodeHuman == idOrCode {
			b := s.bookings[i]
			return &b, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *stubStore) ListWorkProgress(_ context.Context, bookingID string) ([]model.WorkProgress, error) {
	var rows []model.WorkProgress
	for _, p := range s.progress {
		if p.BookingID == bookingID {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

func (s *stubStore) ListBookingReviews(context.Context) ([]store.BookingReview, error) {
	reviews := make([]store.BookingReview, 0, len(s.payments))
	for _, p := range s.payments {
		r := store.BookingReview{Status: string(p.Status)}
		if p.Booking != nil {
			id := p.Booking.ID
			code := p.Booking.CodeHuman
			r.ID = &id
			r.BookingCode = &code
		}
		reviews = append(reviews, r)
	}
	return reviews, nil
}

func (s *stubStore) AssignQueue(_ context.Context, bookingID string) (*int, error) {
	for i := range s.bookings {
		if s.bookings[i].ID == bookingID {
			n := i + 1
			return &n, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", bookingID, store.ErrNotFound)
}

func (s *stubStore) VerifyPayment(_ context.Context, paymentID, verifierID string) (*int, error) {
	for i := range s.payments {
		if s.payments[i].ID == paymentID {
			s.verifiers = append(s.verifiers, verifierID)
			n := i + 1
			return &n, nil
		}
	}
	return nil, fmt.Errorf("payment %s: %w", paymentID, store.ErrNotFound)
}

func (s *stubStore) CreatePayment(_ context.Context, p *model.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.payments = append(s.payments, *p)
	return nil
}

func (s *stubStore) GetPayment(_ context.Context, id string) (*model.Payment, error) {
	for i := range s.payments {
		if s.payments[i].ID == id {
			p := s.payments[i]
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *stubStore) ListStaff(context.Context) ([]model.StaffMember, error) {
	return s.staff, nil
}

func (s *stubStore) CreateStaff(_ context.Context, m *model.StaffMember) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	s.staff = append(s.staff, *m)
	return nil
}

func (s *stubStore) ListTasks(context.Context) ([]model.Task, error) {
	return s.tasks, nil
}

func (s *stubStore) CreateWorkProgress(_ context.Context, wp *model.WorkProgress) error {
	if wp.ID == "" {
		wp.ID = uuid.NewString()
	}
	s.progress = append(s.progress, *wp)
	return nil
}

func (s *stubStore) GetUser(_ context.Context, _ string) (*model.User, error) {
	return nil, store.ErrNotFound
}

// withIdentity injects a gate-resolved identity, standing in for the auth
// middleware on routes under test.
func withIdentity(ident *auth.Identity) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set("identity", ident) }
}

func doJSON(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}
