package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/FMG-lab/surya-painting/internal/apierror"
	"github.com/FMG-lab/surya-painting/internal/auth"
	"github.com/FMG-lab/surya-painting/internal/config"
	"github.com/FMG-lab/surya-painting/internal/infra"
	"github.com/FMG-lab/surya-painting/internal/model"
	"github.com/FMG-lab/surya-painting/internal/store"
	"github.com/FMG-lab/surya-painting/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentsHandler struct {
	store      store.Store
	cfg        *config.Config
	storage    *infra.StorageClient
	dispatcher *worker.Dispatcher
}

func NewPaymentsHandler(st store.Store, cfg *config.Config, storage *infra.StorageClient, dispatcher *worker.Dispatcher) *PaymentsHandler {
	return &PaymentsHandler{store: st, cfg: cfg, storage: storage, dispatcher: dispatcher}
}

type notifyRequest struct {
	BookingCode  string  `json:"booking_code" validate:"required"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	BankFrom     *string `json:"bank_from"`
	TransferTime *string `json:"transfer_time"`
	Reference    *string `json:"reference"`
	Notes        *string `json:"notes"`
	ProofBase64  string  `json:"proof_base64"`
}

// Notify POST /v1/payments/notify — customer reports a bank transfer,
// optionally attaching a base64 proof image. Creates a pending_review
// payment and fires a best-effort WhatsApp notification.
func (h *PaymentsHandler) Notify(c *gin.Context) {
	var req notifyRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkValid(c, &req, func(fe validator.FieldError) string {
		if fe.Tag() == "gt" {
			return "amount must be a positive number"
		}
		return "booking_code and amount are required"
	}) {
		return
	}

	if h.cfg.PaymentMin > 0 && req.Amount < float64(h.cfg.PaymentMin) {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(fmt.Sprintf("Minimum payment is %d", h.cfg.PaymentMin)))
		return
	}
	if h.cfg.PaymentMax > 0 && req.Amount > float64(h.cfg.PaymentMax) {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(fmt.Sprintf("Maximum payment is %d", h.cfg.PaymentMax)))
		return
	}

	ctx := c.Request.Context()
	booking, err := h.store.GetBooking(ctx, req.BookingCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Booking not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}

	var proofPath *string
	if req.ProofBase64 != "" {
		path, err := h.uploadProof(c, req.ProofBase64)
		if err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
			return
		}
		proofPath = &path
	}

	payment := &model.Payment{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		Amount:    decimal.NewFromFloat(req.Amount),
		Method:    "manual_transfer",
		ProofPath: proofPath,
		Status:    model.PaymentPendingReview,
		Notes:     req.Notes,
	}
	if err := h.store.CreatePayment(ctx, payment); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}

	var branch *model.Branch
	if b, err := h.store.GetBranch(ctx, booking.BranchID); err == nil {
		branch = b
	}
	h.dispatcher.Notify(ctx, h.notifyMessage(&req, booking, branch))

	c.JSON(http.StatusOK, gin.H{"message": "Payment notified", "payment": payment})
}

// Banks GET /v1/payments/banks — transfer instructions for customers.
func (h *PaymentsHandler) Banks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"banks": []gin.H{{
		"bank":    h.cfg.BankName,
		"account": h.cfg.BankAccount,
		"holder":  h.cfg.BankHolder,
		"notes":   h.cfg.BankNotes,
	}}})
}

// Verify POST /v1/admin/payments/verify — invokes the opaque verify_payment
// datastore function, stamping the gate-resolved identity as verifier.
func (h *PaymentsHandler) Verify(c *gin.Context) {
	var req struct {
		PaymentID string `json:"payment_id"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if req.PaymentID == "" {
		c.JSON(http.StatusBadRequest, apierror.New("payment_id required in body"))
		return
	}

	ident := auth.IdentityFrom(c)
	queueNo, err := h.store.VerifyPayment(c.Request.Context(), req.PaymentID, ident.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Payment not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "queue_no": queueNo})
}

type verifyResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	QueueNo *int   `json:"queue_no,omitempty"`
	Error   string `json:"error,omitempty"`
}

// VerifyBatch POST /v1/admin/payments/verify-batch — verifies each payment
// independently; one item's failure never aborts or reorders the rest, and
// results come back in input order.
func (h *PaymentsHandler) VerifyBatch(c *gin.Context) {
	var req struct {
		PaymentIDs []string `json:"payment_ids"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if len(req.PaymentIDs) == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("payment_ids array required"))
		return
	}

	ident := auth.IdentityFrom(c)
	results := make([]verifyResult, 0, len(req.PaymentIDs))
	for _, id := range req.PaymentIDs {
		queueNo, err := h.store.VerifyPayment(c.Request.Context(), id, ident.ID)
		if err != nil {
			results = append(results, verifyResult{ID: id, Success: false, Error: err.Error()})
			continue
		}
		results = append(results, verifyResult{ID: id, Success: true, QueueNo: queueNo})
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Proof GET /v1/admin/payments/proof?payment_id= — issues a 1-hour signed
// URL for the payment's uploaded transfer proof.
func (h *PaymentsHandler) Proof(c *gin.Context) {
	paymentID := c.Query("payment_id")
	if paymentID == "" {
		c.JSON(http.StatusBadRequest, apierror.New("payment_id query param is required"))
		return
	}

	payment, err := h.store.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Payment or proof not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	if payment.ProofPath == nil || *payment.ProofPath == "" {
		c.JSON(http.StatusNotFound, apierror.New("No proof file attached"))
		return
	}

	signed, err := h.storage.SignURL(c.Request.Context(), *payment.ProofPath, time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": signed})
}

var dataURLRe = regexp.MustCompile(`^data:([\w+./-]+);base64,(.+)$`)

// uploadProof decodes a (possibly data-URL wrapped) base64 payload and
// stores it in the proof bucket under a random name.
func (h *PaymentsHandler) uploadProof(c *gin.Context, b64 string) (string, error) {
	contentType := "application/octet-stream"
	ext := "bin"
	payload := b64
	if m := dataURLRe.FindStringSubmatch(b64); m != nil {
		contentType = m[1]
		payload = m[2]
		if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 && parts[1] != "" {
			ext = parts[1]
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode proof: %w", err)
	}

	path := fmt.Sprintf("proofs/%s.%s", uuid.NewString(), ext)
	if err := h.storage.Upload(c.Request.Context(), path, data, contentType); err != nil {
		return "", err
	}
	return path, nil
}

func (h *PaymentsHandler) notifyMessage(req *notifyRequest, booking *model.Booking, branch *model.Branch) string {
	deref := func(s *string) string {
		if s == nil || *s == "" {
			return "-"
		}
		return *s
	}
	cabang := "-"
	if branch != nil {
		cabang = fmt.Sprintf("%s [%s]", branch.Name, branch.Code)
	}
	return fmt.Sprintf(
		"Konfirmasi pembayaran baru\nBooking: %s\nNominal: Rp %.0f\nPelanggan: %s\nCabang: %s\nBank: %s\nWaktu: %s\nRef: %s\nStatus: %s/app/customer/track?code=%s",
		req.BookingCode,
		req.Amount,
		booking.GuestName,
		cabang,
		deref(req.BankFrom),
		deref(req.TransferTime),
		deref(req.Reference),
		h.cfg.TrackBasePath,
		url.QueryEscape(req.BookingCode),
	)
}
