package handler

import (
	"net/http"
	"testing"

	"github.com/FMG-lab/surya-painting/internal/auth"
	"github.com/FMG-lab/surya-painting/internal/model"
	"github.com/FMG-lab/surya-painting/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tasksEngine(st store.Store) *gin.Engine {
	h := NewTasksHandler(st)
	g := auth.NewGate(auth.NewResolver(nil, nil))

	r := gin.New()
	r.GET("/v1/technicians/tasks", g.Require(auth.RoleTechnician, auth.RoleAdmin), h.List)
	r.POST("/v1/technicians/tasks/:id/progress", g.Require(auth.RoleTechnician), h.Progress)
	return r
}

func TestTasksList(t *testing.T) {
	st := &stubStore{tasks: []model.Task{{ID: "t-1", BookingID: "bk-1", Title: "Repaint", Status: "pending"}}}
	r := tasksEngine(st)

	w := doJSON(r, http.MethodGet, "/v1/technicians/tasks", "", map[string]string{"x-user-role": "technician"})
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decodeBody(t, w)["tasks"].([]interface{})
	require.Len(t, tasks, 1)
	assert.Equal(t, "Repaint", tasks[0].(map[string]interface{})["title"])

	w = doJSON(r, http.MethodGet, "/v1/technicians/tasks", "", map[string]string{"x-user-role": "manager"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTaskProgress(t *testing.T) {
	st := &stubStore{}
	r := tasksEngine(st)

	w := doJSON(r, http.MethodPost, "/v1/technicians/tasks/bk-1/progress",
		`{"status":"in_progress","note":"Pengecatan dimulai"}`,
		map[string]string{"x-user-role": "technician"})
	require.Equal(t, http.StatusCreated, w.Code)

	progress := decodeBody(t, w)["progress"].(map[string]interface{})
	assert.Equal(t, "in_progress", progress["status"])
	assert.Equal(t, "bk-1", progress["booking_id"])

	require.Len(t, st.progress, 1)
	assert.Equal(t, "bk-1", st.progress[0].BookingID)
}

func TestTaskProgressValidation(t *testing.T) {
	r := tasksEngine(&stubStore{})

	w := doJSON(r, http.MethodPost, "/v1/technicians/tasks/bk-1/progress", `{}`,
		map[string]string{"x-user-role": "technician"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"status required"}`, w.Body.String())
}

func TestTaskProgressRequiresTechnician(t *testing.T) {
	r := tasksEngine(&stubStore{})

	w := doJSON(r, http.MethodPost, "/v1/technicians/tasks/bk-1/progress",
		`{"status":"in_progress"}`, map[string]string{"x-user-role": "admin"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
