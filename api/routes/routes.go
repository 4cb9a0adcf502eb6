package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/config"
	"github.com/ArowuTest/sorteos-backend/internal/handlers"
	"github.com/ArowuTest/sorteos-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandlerDependencies holds every handler the router mounts
type HandlerDependencies struct {
	BusinessHandler *handlers.BusinessHandler
	DrawHandler     *handlers.DrawHandler
	SaleHandler     *handlers.SaleHandler
	ResultHandler   *handlers.ResultHandler
	FinanceHandler  *handlers.FinanceHandler
	VerifyHandler   *handlers.VerifyHandler
	Store           Pinger
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers.RegisterValidators()

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.RateLimit.TrustedProxies); err != nil {
		slog.Error("Invalid trusted proxy list, trusting none", "error", err)
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg))

	public := router.Group("/api/v1")
	{
		public.GET("/health", healthHandler(deps.Store))
		public.GET("/public/tickets/:ticketId", deps.VerifyHandler.VerifyTicket)
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		business := protected.Group("/business")
		{
			business.GET("", deps.BusinessHandler.GetBusiness)
			business.PUT("", deps.BusinessHandler.UpdateBusiness)
		}

		draws := protected.Group("/draws")
		{
			draws.GET("", deps.DrawHandler.ListDraws)
			draws.POST("", deps.DrawHandler.CreateDraw)
			draws.GET("/:id", deps.DrawHandler.GetDraw)
			draws.PUT("/:id", deps.DrawHandler.UpdateDraw)
			draws.DELETE("/:id", deps.DrawHandler.DeleteDraw)
		}

		sales := protected.Group("/sales")
		{
			sales.GET("", deps.SaleHandler.ListSales)
			sales.POST("", deps.SaleHandler.CreateSale)
			sales.DELETE("", deps.SaleHandler.PurgeSales)
			sales.GET("/:id", deps.SaleHandler.GetSale)
			sales.PUT("/:id", deps.SaleHandler.UpdateSale)
			sales.DELETE("/:id", deps.SaleHandler.DeleteSale)
		}

		results := protected.Group("/results")
		{
			results.GET("", deps.ResultHandler.ListResults)
			results.POST("", deps.ResultHandler.CreateResult)
			results.DELETE("", deps.ResultHandler.PurgeResults)
			results.GET("/:id", deps.ResultHandler.GetResult)
			results.PUT("/:id", deps.ResultHandler.UpdateResult)
			results.DELETE("/:id", deps.ResultHandler.DeleteResult)
			results.GET("/:id/winners", deps.ResultHandler.GetWinners)
			results.POST("/:id/winners/:ticketId/pay", deps.ResultHandler.MarkPaid)
			results.POST("/:id/winners/:ticketId/reverse", deps.ResultHandler.ReversePayout)
		}

		finance := protected.Group("/finance")
		{
			finance.GET("/daily", deps.FinanceHandler.GetDailySummary)
			finance.GET("/summary", deps.FinanceHandler.GetRangeSummary)
		}
	}

	return router
}

func healthHandler(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				slog.Error("Health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
