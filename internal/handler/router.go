package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slabstock/internal/domain/user"
	"slabstock/internal/handler/api"
	"slabstock/internal/handler/middleware"
	"slabstock/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth       *api.AuthHandler
	Hold       *api.HoldHandler
	Allocation *api.AllocationHandler
	Stock      *api.StockHandler
	Lot        *api.LotHandler
	Photo      *api.PhotoHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware, registry *prometheus.Registry) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware, registry)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, registry *prometheus.Registry) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		holds := apiGroup.Group("/holds")
		holds.Use(authMiddleware.RequireAuth())
		{
			addRoutes(holds, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Hold.CreateHold},
				{Method: http.MethodGet, Path: "/expiring", Handler: h.Hold.ListExpiring},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Hold.GetHold},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Hold.CancelHold},
				{Method: http.MethodPost, Path: "/:id/renew", Handler: h.Hold.RenewHold},
				{Method: http.MethodPost, Path: "/sweep", Handler: h.Hold.Sweep,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)}},
			})
		}

		lots := apiGroup.Group("/lots")
		lots.Use(authMiddleware.RequireAuth())
		{
			addRoutes(lots, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Lot.GetLot},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Lot.UpdateAttributes},
				{Method: http.MethodGet, Path: "/:id/holds", Handler: h.Hold.ListLotHolds},
				{Method: http.MethodGet, Path: "/:id/stock-units", Handler: h.Stock.ListLotStockUnits},
				{Method: http.MethodGet, Path: "/:id/photos", Handler: h.Photo.ListPhotos},
				{Method: http.MethodPost, Path: "/:id/photos", Handler: h.Photo.AddPhoto},
			})
		}

		photos := apiGroup.Group("/photos")
		photos.Use(authMiddleware.RequireAuth())
		{
			addRoutes(photos, []route{
				{Method: http.MethodGet, Path: "/:id/content", Handler: h.Photo.DownloadPhoto},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Photo.DeletePhoto},
			})
		}

		stock := apiGroup.Group("")
		stock.Use(authMiddleware.RequireAuth())
		{
			addRoutes(stock, []route{
				{Method: http.MethodGet, Path: "/availability", Handler: h.Stock.GetAvailability},
				{Method: http.MethodGet, Path: "/stock-units/:id", Handler: h.Stock.GetStockUnit},
			})
		}

		operations := apiGroup.Group("/operations")
		operations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(operations, []route{
				{Method: http.MethodGet, Path: "/:id/candidates", Handler: h.Stock.ListCandidateUnits},
				{Method: http.MethodPost, Path: "/:id/bindings", Handler: h.Allocation.BindUnit,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleWarehouse)}},
				{Method: http.MethodPost, Path: "/:id/validate", Handler: h.Allocation.ValidateOperation},
			})
		}

		bindings := apiGroup.Group("/bindings")
		bindings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bindings, []route{
				{Method: http.MethodPut, Path: "/:id/reassign", Handler: h.Allocation.ReassignBinding,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleWarehouse)}},
			})
		}

		salesOrders := apiGroup.Group("/sales-orders")
		salesOrders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(salesOrders, []route{
				{Method: http.MethodPost, Path: "/:id/release-auto", Handler: h.Allocation.ReleaseAutoAssignments},
			})
		}

		receptions := apiGroup.Group("/receptions")
		receptions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(receptions, []route{
				{Method: http.MethodPost, Path: "/capture", Handler: h.Lot.CaptureReception,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleWarehouse)}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
