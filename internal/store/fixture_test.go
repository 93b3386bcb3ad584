package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/FMG-lab/surya-painting/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"branches.json": `[
			{"id":"b-1","code":"JKT","name":"Jakarta","capacity":5},
			{"id":"b-2","code":"BDG","name":"Bandung","capacity":3}
		]`,
		"bookings.json": `[
			{"id":"bk-1","code_human":"SP-JKT-2506-AAAA","status":"pending_payment","branch_id":"b-1","guest_name":"Budi"},
			{"id":"bk-2","code_human":"SP-JKT-2505-BBBB","status":"queued","branch_id":"b-1","guest_name":"Siti","queue_no":4}
		]`,
		"payments.json": `[
			{"id":"pay-1","booking_id":"bk-2","amount":100000,"method":"manual_transfer","status":"pending_review",
			 "booking":{"id":"bk-2","code_human":"SP-JKT-2505-BBBB","status":"queued","branch_id":"b-1","guest_name":"Siti"}}
		]`,
		"staff.json": `[{"id":"st-1","name":"Dewi","role":"manager"}]`,
		"tasks.json": `[{"id":"t-1","booking_id":"bk-1","title":"Repaint","status":"pending"}]`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func newTestFixture(t *testing.T) Store {
	t.Helper()
	dir := t.TempDir()
	writeFixtures(t, dir)
	return NewFixture(dir)
}

func TestFixtureGetBranchByIDOrCode(t *testing.T) {
	s := newTestFixture(t)
	ctx := context.Background()

	byID, err := s.GetBranch(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, "JKT", byID.Code)

	byCode, err := s.GetBranch(ctx, "BDG")
	require.NoError(t, err)
	assert.Equal(t, "b-2", byCode.ID)

	_, err = s.GetBranch(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFixtureGetBookingByIDOrHumanCode(t *testing.T) {
	s := newTestFixture(t)
	ctx := context.Background()

	byID, err := s.GetBooking(ctx, "bk-2")
	require.NoError(t, err)
	assert.Equal(t, "SP-JKT-2505-BBBB", byID.CodeHuman)
	require.NotNil(t, byID.QueueNo)
	assert.Equal(t, 4, *byID.QueueNo)

	byCode, err := s.GetBooking(ctx, "SP-JKT-2506-AAAA")
	require.NoError(t, err)
	assert.Equal(t, "bk-1", byCode.ID)

	_, err = s.GetBooking(ctx, "SP-XXX-0000-0000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFixtureCreateBookingNotPersisted(t *testing.T) {
	s := newTestFixture(t)
	ctx := context.Background()

	b := &model.Booking{CodeHuman: "SP-JKT-2506-CCCC", Status: model.BookingPendingPayment, BranchID: "b-1", GuestName: "Andi"}
	require.NoError(t, s.CreateBooking(ctx, b))
	assert.NotEmpty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	// Snapshot writes are synthesized, never stored.
	_, err := s.GetBooking(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFixtureAssignQueueDeterministic(t *testing.T) {
	s := newTestFixture(t)
	ctx := context.Background()

	first, err := s.AssignQueue(ctx, "bk-2")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 2, *first)

	// Repeated calls mint the same number from the same snapshot position.
	second, err := s.AssignQueue(ctx, "bk-2")
	require.NoError(t, err)
	assert.Equal(t, *first, *second)

	_, err = s.AssignQueue(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFixtureVerifyPayment(t *testing.T) {
	s := newTestFixture(t)
	ctx := context.Background()

	queueNo, err := s.VerifyPayment(ctx, "pay-1", "admin-1")
	require.NoError(t, err)
	require.NotNil(t, queueNo)
	assert.Equal(t, 1, *queueNo)

	_, err = s.VerifyPayment(ctx, "ghost", "admin-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFixtureListWorkProgressSynthesized(t *testing.T) {
	s := newTestFixture(t)

	rows, err := s.ListWorkProgress(context.Background(), "bk-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, string(model.BookingPendingPayment), rows[0].Status)
	require.NotNil(t, rows[0].Note)
	assert.Equal(t, "Menunggu pembayaran", *rows[0].Note)
}

func TestFixtureListBookingReviews(t *testing.T) {
	s := newTestFixture(t)

	reviews, err := s.ListBookingReviews(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "pending_review", reviews[0].Status)
	require.NotNil(t, reviews[0].BookingCode)
	assert.Equal(t, "SP-JKT-2505-BBBB", *reviews[0].BookingCode)
}

func TestFixtureUpdateBranchEchoesMerge(t *testing.T) {
	s := newTestFixture(t)
	name := "Jakarta Pusat"
	capacity := 9

	b, err := s.UpdateBranch(context.Background(), "b-1", BranchUpdate{Name: &name, Capacity: &capacity})
	require.NoError(t, err)
	assert.Equal(t, "Jakarta Pusat", b.Name)
	assert.Equal(t, 9, b.Capacity)
	assert.Equal(t, "JKT", b.Code)

	// The snapshot itself is untouched.
	orig, err := s.GetBranch(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "Jakarta", orig.Name)
}

func TestFixtureMissingDirServesEmpty(t *testing.T) {
	s := NewFixture(filepath.Join(t.TempDir(), "does-not-exist"))
	ctx := context.Background()

	branches, err := s.ListBranches(ctx)
	require.NoError(t, err)
	assert.Empty(t, branches)

	staff, err := s.ListStaff(ctx)
	require.NoError(t, err)
	assert.Empty(t, staff)

	_, err = s.GetUser(ctx, "any")
	assert.True(t, errors.Is(err, ErrNotFound))
}
