package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/FMG-lab/surya-painting/internal/apierror"
	"github.com/FMG-lab/surya-painting/internal/model"
	"github.com/FMG-lab/surya-painting/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type BookingsHandler struct {
	store store.Store
	// live distinguishes the datastore-backed binding from fixture mode:
	// fixture mode substitutes a stub branch for unknown branch ids so the
	// customer flow stays demoable without a database.
	live bool
}

func NewBookingsHandler(st store.Store, live bool) *BookingsHandler {
	return &BookingsHandler{store: st, live: live}
}

type createBookingRequest struct {
	BranchID     string  `json:"branch_id" validate:"required"`
	CustomerName string  `json:"customer_name" validate:"required"`
	Phone        *string `json:"phone"`
	VehicleType  *string `json:"vehicle_type"`
	Color        *string `json:"color"`
	Notes        *string `json:"notes"`
	PlateNumber  *string `json:"plateNumber"`
}

type bookingBranch struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Create POST /v1/bookings — unauthenticated customer entry point.
func (h *BookingsHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkValid(c, &req, func(validator.FieldError) string {
		return "branch_id and customer_name are required"
	}) {
		return
	}

	ctx := c.Request.Context()
	branch, err := h.store.GetBranch(ctx, req.BranchID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
			return
		}
		if h.live {
			c.JSON(http.StatusNotFound, apierror.New("Branch not found"))
			return
		}
		branch = &model.Branch{ID: req.BranchID, Code: "UNKNOWN", Name: "Unknown"}
	}

	booking := &model.Booking{
		ID:          uuid.NewString(),
		CodeHuman:   makeHumanCode(branch.Code),
		Status:      model.BookingPendingPayment,
		BranchID:    branch.ID,
		GuestName:   req.CustomerName,
		GuestPhone:  req.Phone,
		PlateNumber: req.PlateNumber,
		VehicleType: req.VehicleType,
		Color:       req.Color,
		Notes:       req.Notes,
	}
	if err := h.store.CreateBooking(ctx, booking); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking dibuat. Silakan lakukan pembayaran.",
		"booking": gin.H{
			"id":         booking.ID,
			"code":       booking.ID,
			"code_human": booking.CodeHuman,
			"status":     booking.Status,
			"branch":     bookingBranch{ID: branch.ID, Code: branch.Code, Name: branch.Name},
		},
	})
}

type progressEntry struct {
	Status    string    `json:"status"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// Status GET /v1/bookings/:code/status — public tracking page, addressable
// by booking id or human code. Repeated reads return identical
// status/queue_number absent an intervening state change.
func (h *BookingsHandler) Status(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, apierror.New("code is required"))
		return
	}

	ctx := c.Request.Context()
	booking, err := h.store.GetBooking(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Booking not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}

	branch := bookingBranch{ID: booking.BranchID}
	if b, err := h.store.GetBranch(ctx, booking.BranchID); err == nil {
		branch.Code = b.Code
		branch.Name = b.Name
	}

	rows, err := h.store.ListWorkProgress(ctx, booking.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	progress := make([]progressEntry, 0, len(rows))
	for _, p := range rows {
		progress = append(progress, progressEntry{Status: p.Status, Note: p.Note, CreatedAt: p.CreatedAt})
	}

	c.JSON(http.StatusOK, gin.H{
		"code":         booking.ID,
		"code_human":   booking.CodeHuman,
		"status":       booking.Status,
		"queue_number": booking.QueueNo,
		"branch":       branch,
		"progress":     progress,
	})
}

// AssignQueue POST /v1/admin/bookings/assign-queue — invokes the opaque
// assign_queue_for_booking datastore function and passes its result through.
func (h *BookingsHandler) AssignQueue(c *gin.Context) {
	var req struct {
		BookingID string `json:"booking_id"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.BookingID == "" {
		c.JSON(http.StatusBadRequest, apierror.New("booking_id required in body"))
		return
	}

	queueNo, err := h.store.AssignQueue(c.Request.Context(), req.BookingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Booking not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "queue_no": queueNo})
}

// ManagerList GET /v1/manager/bookings — bookings awaiting payment review,
// derived from the payments table.
func (h *BookingsHandler) ManagerList(c *gin.Context) {
	reviews, err := h.store.ListBookingReviews(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": reviews})
}

// makeHumanCode mints the customer-facing display code:
// SP-<BRANCH>-<YYMM>-<4 hex upper>.
func makeHumanCode(branchCode string) string {
	now := time.Now()
	var b [2]byte
	_, _ = rand.Read(b[:])
	suffix := strings.ToUpper(hex.EncodeToString(b[:]))
	return fmt.Sprintf("SP-%s-%02d%02d-%s", branchCode, now.Year()%100, int(now.Month()), suffix)
}
