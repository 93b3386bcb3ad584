package handler

import (
	"net/http"

	"github.com/FMG-lab/surya-painting/internal/apierror"
	"github.com/FMG-lab/surya-painting/internal/model"
	"github.com/FMG-lab/surya-painting/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TasksHandler struct {
	store store.Store
}

func NewTasksHandler(st store.Store) *TasksHandler {
	return &TasksHandler{store: st}
}

// List GET /v1/technicians/tasks (technician, admin).
func (h *TasksHandler) List(c *gin.Context) {
	tasks, err := h.store.ListTasks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

type progressRequest struct {
	Status string  `json:"status" validate:"required"`
	Note   *string `json:"note"`
}

// Progress POST /v1/technicians/tasks/:id/progress (technician) — appends a
// progress note for the task's booking.
func (h *TasksHandler) Progress(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, apierror.New("id is required"))
		return
	}

	var req progressRequest
	if !bindJSON(c, &req) {
		return
	}
	if !checkValid(c, &req, func(validator.FieldError) string {
		return "status required"
	}) {
		return
	}

	wp := &model.WorkProgress{
		BookingID: id,
		Status:    req.Status,
		Note:      req.Note,
	}
	if err := h.store.CreateWorkProgress(c.Request.Context(), wp); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"progress": wp})
}
