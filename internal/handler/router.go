package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"studio-ledger/internal/handler/api"
	"studio-ledger/internal/handler/middleware"
	"studio-ledger/internal/pkg/config"
	"studio-ledger/internal/usecase/commands"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	redemptionHandler *api.RedemptionHandler,
	ledgerHandler *api.LedgerHandler,
	usageHandler *api.UsageHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, redemptionHandler, ledgerHandler, usageHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	redemptionHandler *api.RedemptionHandler,
	ledgerHandler *api.LedgerHandler,
	usageHandler *api.UsageHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		redemptions := apiGroup.Group("/redemptions")
		{
			addRoutes(redemptions, []route{
				{Method: http.MethodPost, Path: "", Handler: redemptionHandler.CreateRedemption},
				{Method: http.MethodGet, Path: "/:id", Handler: redemptionHandler.GetRedemption},
				{Method: http.MethodPost, Path: "/:id/usages", Handler: usageHandler.RecordDailyUsage},
			})

			// Approval decisions are staff actions.
			adminOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(commands.RoleAdmin)}
			addRoutes(redemptions, []route{
				{Method: http.MethodPost, Path: "/:id/approve", Handler: redemptionHandler.ApproveRedemption, Mw: adminOnly},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: redemptionHandler.CancelRedemption, Mw: adminOnly},
			})
		}

		members := apiGroup.Group("/members")
		{
			addRoutes(members, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: ledgerHandler.GetMember},
				{Method: http.MethodGet, Path: "/:id/transactions", Handler: ledgerHandler.ListTransactions},
				{Method: http.MethodGet, Path: "/:id/redemptions", Handler: redemptionHandler.ListMemberRedemptions},
			})

			adminOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(commands.RoleAdmin)}
			addRoutes(members, []route{
				{Method: http.MethodPost, Path: "/:id/balance", Handler: ledgerHandler.AdjustBalance, Mw: adminOnly},
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
