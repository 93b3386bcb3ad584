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

// branchesEngine wires the real gate so the role matrix is exercised the
// way the router wires it.
func branchesEngine(st store.Store) *gin.Engine {
	h := NewBranchesHandler(st)
	g := auth.NewGate(auth.NewResolver(nil, nil))

	r := gin.New()
	r.GET("/v1/branches", g.Optional(), h.PublicList)
	admin := r.Group("/v1/admin")
	admin.GET("/branches", g.Require(auth.RoleSuperAdmin, auth.RoleBranchManager), h.AdminList)
	admin.POST("/branches", g.Require(auth.RoleSuperAdmin), h.Create)
	admin.GET("/branches/:id", g.Require(auth.RoleAdmin, auth.RoleManager, auth.RoleBranchManager), h.Get)
	admin.PUT("/branches/:id", g.Require(auth.RoleAdmin, auth.RoleSuperAdmin), h.Update)
	admin.DELETE("/branches/:id", g.Require(auth.RoleAdmin, auth.RoleSuperAdmin), h.Delete)
	return r
}

func twoBranches() []model.Branch {
	return []model.Branch{
		{ID: "b-1", Code: "JKT", Name: "Jakarta", Capacity: 5},
		{ID: "b-2", Code: "BDG", Name: "Bandung", Capacity: 3},
	}
}

func TestPublicListAnonymous(t *testing.T) {
	r := branchesEngine(&stubStore{branches: twoBranches()})

	w := doJSON(r, http.MethodGet, "/v1/branches", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	branches := decodeBody(t, w)["branches"].([]interface{})
	assert.Len(t, branches, 2)
}

func TestPublicListBranchManagerScoped(t *testing.T) {
	r := branchesEngine(&stubStore{branches: twoBranches()})

	// Override-header identities carry no branch, so the scoped list is
	// empty rather than leaking other branches.
	w := doJSON(r, http.MethodGet, "/v1/branches", "", map[string]string{"x-user-role": "branch_manager"})
	require.Equal(t, http.StatusOK, w.Code)
	branches := decodeBody(t, w)["branches"].([]interface{})
	assert.Empty(t, branches)
}

func TestAdminListRoleMatrix(t *testing.T) {
	r := branchesEngine(&stubStore{branches: twoBranches()})

	w := doJSON(r, http.MethodGet, "/v1/admin/branches", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/admin/branches", "", map[string]string{"x-user-role": "technician"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodGet, "/v1/admin/branches", "", map[string]string{"x-user-role": "super_admin"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"].([]interface{}), 2)
}

func TestAdminListBranchManagerSeesOwnBranch(t *testing.T) {
	h := NewBranchesHandler(&stubStore{branches: twoBranches()})
	branchID := "b-2"
	r := gin.New()
	r.GET("/v1/admin/branches",
		withIdentity(&auth.Identity{ID: "m-1", Role: auth.RoleBranchManager, BranchID: &branchID}),
		h.AdminList)

	w := doJSON(r, http.MethodGet, "/v1/admin/branches", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "BDG", data[0].(map[string]interface{})["code"])
}

func TestCreateBranch(t *testing.T) {
	st := &stubStore{}
	r := branchesEngine(st)
	headers := map[string]string{"x-user-role": "super_admin"}

	w := doJSON(r, http.MethodPost, "/v1/admin/branches", `{"name":"Medan Utara"}`, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Medan Utara", data["name"])
	assert.Equal(t, "MEDAN", data["code"]) // derived from first word of name
	assert.Equal(t, float64(1), data["capacity"])
	require.Len(t, st.branches, 1)

	w = doJSON(r, http.MethodPost, "/v1/admin/branches", `{"name":"Solo","code":"SLO","capacity":4}`, headers)
	require.Equal(t, http.StatusCreated, w.Code)
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "SLO", data["code"])
	assert.Equal(t, float64(4), data["capacity"])
}

func TestCreateBranchMissingName(t *testing.T) {
	r := branchesEngine(&stubStore{})
	w := doJSON(r, http.MethodPost, "/v1/admin/branches", `{}`, map[string]string{"x-user-role": "super_admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"name is required"}`, w.Body.String())
}

func TestGetBranch(t *testing.T) {
	r := branchesEngine(&stubStore{branches: twoBranches()})
	headers := map[string]string{"x-user-role": "admin"}

	w := doJSON(r, http.MethodGet, "/v1/admin/branches/b-1", "", headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "JKT", decodeBody(t, w)["data"].(map[string]interface{})["code"])

	w = doJSON(r, http.MethodGet, "/v1/admin/branches/ghost", "", headers)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Branch not found"}`, w.Body.String())
}

func TestUpdateBranch(t *testing.T) {
	r := branchesEngine(&stubStore{branches: twoBranches()})
	headers := map[string]string{"x-user-role": "admin"}

	w := doJSON(r, http.MethodPut, "/v1/admin/branches/b-1", `{"name":"Jakarta Pusat","capacity":9}`, headers)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Jakarta Pusat", data["name"])
	assert.Equal(t, float64(9), data["capacity"])
	assert.Equal(t, "JKT", data["code"]) // untouched fields keep their value

	w = doJSON(r, http.MethodPut, "/v1/admin/branches/ghost", `{"name":"X"}`, headers)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteBranch(t *testing.T) {
	st := &stubStore{branches: twoBranches()}
	r := branchesEngine(st)
	headers := map[string]string{"x-user-role": "admin"}

	w := doJSON(r, http.MethodDelete, "/v1/admin/branches/b-1", "", headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Len(t, st.branches, 1)

	w = doJSON(r, http.MethodDelete, "/v1/admin/branches/ghost", "", headers)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
