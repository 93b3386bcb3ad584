package handler

import (
	"net/http"

	"github.com/FMG-lab/surya-painting/internal/apierror"
	"github.com/FMG-lab/surya-painting/internal/model"
	"github.com/FMG-lab/surya-painting/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type StaffHandler struct {
	store store.Store
}

func NewStaffHandler(st store.Store) *StaffHandler {
	return &StaffHandler{store: st}
}

// List GET /v1/admin/staff (admin, manager).
func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.store.ListStaff(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

type createStaffRequest struct {
	Name     string  `json:"name" validate:"required"`
	Role     string  `json:"role" validate:"required"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	BranchID *string `json:"branch_id"`
}

// Create POST /v1/admin/staff (admin).
func (h *StaffHandler) Create(c *gin.Context) {
	var req createStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkValid(c, &req, func(validator.FieldError) string {
		return "name and role required"
	}) {
		return
	}

	member := &model.StaffMember{
		Name:     req.Name,
		Role:     req.Role,
		Email:    req.Email,
		Phone:    req.Phone,
		BranchID: req.BranchID,
	}
	if err := h.store.CreateStaff(c.Request.Context(), member); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"staff": member})
}
