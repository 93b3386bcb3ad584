package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/FMG-lab/surya-painting/internal/apierror"
	"github.com/FMG-lab/surya-painting/internal/auth"
	"github.com/FMG-lab/surya-painting/internal/model"
	"github.com/FMG-lab/surya-painting/internal/store"

	"github.com/gin-gonic/gin"
)

type BranchesHandler struct {
	store store.Store
}

func NewBranchesHandler(st store.Store) *BranchesHandler {
	return &BranchesHandler{store: st}
}

type branchRequest struct {
	Name     string  `json:"name"`
	Code     string  `json:"code"`
	Address  *string `json:"address"`
	Capacity int     `json:"capacity"`
}

// PublicList GET /v1/branches — role-scoped when an identity resolves,
// otherwise the full public list (customer booking form).
func (h *BranchesHandler) PublicList(c *gin.Context) {
	ident := auth.IdentityFrom(c)
	if ident != nil && ident.Role == auth.RoleBranchManager {
		c.JSON(http.StatusOK, gin.H{"branches": h.scopedBranches(c, ident)})
		return
	}

	branches, err := h.store.ListBranches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

// AdminList GET /v1/admin/branches — super_admin sees all branches,
// branch_manager only their own.
func (h *BranchesHandler) AdminList(c *gin.Context) {
	ident := auth.IdentityFrom(c)
	if ident.Role == auth.RoleBranchManager {
		c.JSON(http.StatusOK, gin.H{"data": h.scopedBranches(c, ident)})
		return
	}

	branches, err := h.store.ListBranches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": branches})
}

// scopedBranches returns the manager's own branch as a one-element list, or
// an empty list when no branch is attached to the identity.
func (h *BranchesHandler) scopedBranches(c *gin.Context, ident *auth.Identity) []model.Branch {
	if ident.BranchID == nil {
		return []model.Branch{}
	}
	b, err := h.store.GetBranch(c.Request.Context(), *ident.BranchID)
	if err != nil {
		return []model.Branch{}
	}
	return []model.Branch{*b}
}

// Create POST /v1/admin/branches (super_admin).
func (h *BranchesHandler) Create(c *gin.Context) {
	var req branchRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, apierror.New("name is required"))
		return
	}

	b := &model.Branch{
		Name:     req.Name,
		Code:     req.Code,
		Address:  req.Address,
		Capacity: req.Capacity,
	}
	if b.Code == "" {
		b.Code = deriveBranchCode(req.Name)
	}
	if b.Capacity <= 0 {
		b.Capacity = 1
	}

	if err := h.store.CreateBranch(c.Request.Context(), b); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": b})
}

// Get GET /v1/admin/branches/:id.
func (h *BranchesHandler) Get(c *gin.Context) {
	b, err := h.store.GetBranch(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Branch not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": b})
}

// Update PUT /v1/admin/branches/:id (super_admin).
func (h *BranchesHandler) Update(c *gin.Context) {
	var req struct {
		Name     *string `json:"name"`
		Code     *string `json:"code"`
		Address  *string `json:"address"`
		Capacity *int    `json:"capacity"`
	}
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.store.UpdateBranch(c.Request.Context(), c.Param("id"), store.BranchUpdate{
		Name:     req.Name,
		Code:     req.Code,
		Address:  req.Address,
		Capacity: req.Capacity,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Branch not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": b})
}

// Delete DELETE /v1/admin/branches/:id (super_admin).
func (h *BranchesHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteBranch(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Branch not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// deriveBranchCode falls back to the first word of the branch name,
// uppercased, when no explicit code was supplied.
func deriveBranchCode(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "UNK"
	}
	return strings.ToUpper(fields[0])
}
