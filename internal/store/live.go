package store

import (
	"context"
	"errors"

	"github.com/FMG-lab/surya-painting/internal/model"

	"gorm.io/gorm"
)

// liveStore is the postgres-backed implementation. Queue assignment and
// payment verification call the assign_queue_for_booking / verify_payment
// database functions — the atomicity lives there, not here.
type liveStore struct {
	db *gorm.DB
}

// NewLive wraps an established GORM connection.
func NewLive(db *gorm.DB) Store {
	return &liveStore{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// ── Branches ──────────────────────────────────────────────────────────────────

func (s *liveStore) ListBranches(ctx context.Context) ([]model.Branch, error) {
	var list []model.Branch
	err := s.db.WithContext(ctx).Order("created_at asc").Find(&list).Error
	return list, err
}

func (s *liveStore) GetBranch(ctx context.Context, idOrCode string) (*model.Branch, error) {
	var b model.Branch
	err := s.db.WithContext(ctx).
		Where("id::text = ? OR code = ?", idOrCode, idOrCode).
		First(&b).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (s *liveStore) CreateBranch(ctx context.Context, b *model.Branch) error {
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *liveStore) UpdateBranch(ctx context.Context, id string, upd BranchUpdate) (*model.Branch, error) {
	var b model.Branch
	if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
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
	if err := s.db.WithContext(ctx).Save(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *liveStore) DeleteBranch(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Branch{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ── Bookings ──────────────────────────────────────────────────────────────────

func (s *liveStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	return s.db.WithContext(ctx).Create(b).Error
}

func (s *liveStore) GetBooking(ctx context.Context, idOrCode string) (*model.Booking, error) {
	var b model.Booking
	err := s.db.WithContext(ctx).
		Where("id::text = ? OR code_human = ?", idOrCode, idOrCode).
		First(&b).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (s *liveStore) ListWorkProgress(ctx context.Context, bookingID string) ([]model.WorkProgress, error) {
	var list []model.WorkProgress
	err := s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at asc").
		Find(&list).Error
	return list, err
}

func (s *liveStore) ListBookingReviews(ctx context.Context) ([]BookingReview, error) {
	var payments []model.Payment
	err := s.db.WithContext(ctx).
		Preload("Booking").
		Order("created_at desc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return reviewsFromPayments(payments), nil
}

// ── Queue assignment / payment verification ───────────────────────────────────

func (s *liveStore) AssignQueue(ctx context.Context, bookingID string) (*int, error) {
	var queueNo *int
	err := s.db.WithContext(ctx).
		Raw("SELECT assign_queue_for_booking(?) AS queue_no", bookingID).
		Scan(&queueNo).Error
	if err != nil {
		return nil, err
	}
	return queueNo, nil
}

func (s *liveStore) VerifyPayment(ctx context.Context, paymentID, verifierID string) (*int, error) {
	var queueNo *int
	err := s.db.WithContext(ctx).
		Raw("SELECT queue_no FROM verify_payment(?, ?)", paymentID, verifierID).
		Scan(&queueNo).Error
	if err != nil {
		return nil, err
	}
	return queueNo, nil
}

// ── Payments ──────────────────────────────────────────────────────────────────

func (s *liveStore) CreatePayment(ctx context.Context, p *model.Payment) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *liveStore) GetPayment(ctx context.Context, id string) (*model.Payment, error) {
	var p model.Payment
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ── Staff ─────────────────────────────────────────────────────────────────────

func (s *liveStore) ListStaff(ctx context.Context) ([]model.StaffMember, error) {
	var list []model.StaffMember
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&list).Error
	return list, err
}

func (s *liveStore) CreateStaff(ctx context.Context, st *model.StaffMember) error {
	return s.db.WithContext(ctx).Create(st).Error
}

// ── Tasks ─────────────────────────────────────────────────────────────────────

func (s *liveStore) ListTasks(ctx context.Context) ([]model.Task, error) {
	var list []model.Task
	err := s.db.WithContext(ctx).Order("created_at asc").Find(&list).Error
	return list, err
}

func (s *liveStore) CreateWorkProgress(ctx context.Context, wp *model.WorkProgress) error {
	return s.db.WithContext(ctx).Create(wp).Error
}

// ── Users ─────────────────────────────────────────────────────────────────────

func (s *liveStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// reviewsFromPayments shapes payment rows into the manager review view.
// Shared with the fixture store.
func reviewsFromPayments(payments []model.Payment) []BookingReview {
	reviews := make([]BookingReview, 0, len(payments))
	for _, p := range payments {
		r := BookingReview{Status: string(p.Status)}
		if p.Booking != nil {
			id := p.Booking.ID
			code := p.Booking.CodeHuman
			r.ID = &id
			r.BookingCode = &code
		}
		reviews = append(reviews, r)
	}
	return reviews
}
