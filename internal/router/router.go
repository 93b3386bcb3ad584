package router

import (
	"net/http"
	"time"

	"github.com/FMG-lab/surya-painting/internal/apierror"
	"github.com/FMG-lab/surya-painting/internal/auth"
	"github.com/FMG-lab/surya-painting/internal/config"
	"github.com/FMG-lab/surya-painting/internal/handler"
	"github.com/FMG-lab/surya-painting/internal/infra"
	"github.com/FMG-lab/surya-painting/internal/middleware"
	"github.com/FMG-lab/surya-painting/internal/store"
	"github.com/FMG-lab/surya-painting/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// db is nil in fixture mode; rdb is nil when no redis is configured.
func New(cfg *config.Config, st store.Store, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// A known path hit with the wrong method is 405, not 404
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, apierror.New("Method not allowed"))
	})

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Auth ─────────────────────────────────────────────────────────────────
	var verifier auth.TokenVerifier
	if cfg.LiveAuth() {
		verifier = infra.NewAuthClient(cfg.AuthURL, cfg.AuthAPIKey)
	}
	gate := auth.NewGate(auth.NewResolver(verifier, st))

	// ── Handlers ─────────────────────────────────────────────────────────────
	storage := infra.NewStorageClient(cfg.StorageURL, cfg.StorageKey, cfg.ProofBucket)

	branchesH := handler.NewBranchesHandler(st)
	bookingsH := handler.NewBookingsHandler(st, db != nil)
	paymentsH := handler.NewPaymentsHandler(st, cfg, storage, dispatcher)
	staffH := handler.NewStaffHandler(st)
	tasksH := handler.NewTasksHandler(st)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		// Public / customer-facing
		v1.GET("/branches", gate.Optional(), branchesH.PublicList)
		v1.POST("/bookings", bookingsH.Create)
		v1.GET("/bookings/:code/status", bookingsH.Status)
		v1.POST("/payments/notify", paymentsH.Notify)
		v1.GET("/payments/banks", paymentsH.Banks)

		// Admin — per-route role allow-lists
		admin := v1.Group("/admin")
		{
			admin.GET("/branches",
				gate.Require(auth.RoleSuperAdmin, auth.RoleBranchManager), branchesH.AdminList)
			admin.POST("/branches",
				gate.Require(auth.RoleSuperAdmin), branchesH.Create)
			admin.GET("/branches/:id",
				gate.Require(auth.RoleAdmin, auth.RoleManager, auth.RoleBranchManager), branchesH.Get)
			admin.PUT("/branches/:id",
				gate.Require(auth.RoleAdmin, auth.RoleSuperAdmin), branchesH.Update)
			admin.DELETE("/branches/:id",
				gate.Require(auth.RoleAdmin, auth.RoleSuperAdmin), branchesH.Delete)

			admin.POST("/bookings/assign-queue",
				gate.Require(auth.RoleAdmin, auth.RoleSuperAdmin), bookingsH.AssignQueue)

			admin.POST("/payments/verify",
				gate.Require(auth.RoleAdmin, auth.RoleSuperAdmin), paymentsH.Verify)
			admin.POST("/payments/verify-batch",
				gate.Require(auth.RoleAdmin, auth.RoleSuperAdmin), paymentsH.VerifyBatch)
			admin.GET("/payments/proof",
				gate.Require(auth.RoleAdmin, auth.RoleSuperAdmin), paymentsH.Proof)

			admin.GET("/staff",
				gate.Require(auth.RoleAdmin, auth.RoleManager), staffH.List)
			admin.POST("/staff",
				gate.Require(auth.RoleAdmin), staffH.Create)
		}

		v1.GET("/manager/bookings",
			gate.Require(auth.RoleManager, auth.RoleAdmin), bookingsH.ManagerList)

		v1.GET("/technicians/tasks",
			gate.Require(auth.RoleTechnician, auth.RoleAdmin), tasksH.List)
		v1.POST("/technicians/tasks/:id/progress",
			gate.Require(auth.RoleTechnician), tasksH.Progress)
	}

	return r
}
