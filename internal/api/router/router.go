package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/benitha200/cherryapp-backend/config"
	"github.com/benitha200/cherryapp-backend/internal/api/handler"
	"github.com/benitha200/cherryapp-backend/internal/api/middleware"
	"github.com/benitha200/cherryapp-backend/internal/model"
	"github.com/benitha200/cherryapp-backend/pkg/jwt"
)

// Setup builds the gin engine.
// blacklist and limiter may be nil when Redis is disabled.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	blacklist middleware.Blacklist,
	limiter middleware.Limiter,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	adminOnly := middleware.RoleAuth(model.RoleSuperAdmin, model.RoleAdmin)

	api := r.Group("/api")
	{
		// public
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(limiter, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, blacklist, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/register", adminOnly, h.User.Register)
			authorized.GET("/auth/users", adminOnly, h.User.ListUsers)
			authorized.GET("/auth/users/:id", adminOnly, h.User.GetUser)
			authorized.PUT("/auth/users/:id", h.User.UpdateUser)
			authorized.DELETE("/auth/users/:id", adminOnly, h.User.DeleteUser)

			cws := authorized.Group("/cws")
			{
				cws.GET("", h.Station.List)
				cws.GET("/:id", h.Station.Get)
				cws.POST("", adminOnly, h.Station.Create)
				cws.PUT("/:id", adminOnly, h.Station.Update)
				cws.DELETE("/:id", adminOnly, h.Station.Delete)
			}

			sites := authorized.Group("/site-collections")
			{
				sites.GET("", h.SiteCollection.List)
				sites.GET("/cws/:cwsId", h.SiteCollection.ListByStation)
				sites.GET("/:id", h.SiteCollection.Get)
				sites.POST("", h.SiteCollection.Create)
				sites.PUT("/:id", h.SiteCollection.Update)
				sites.DELETE("/:id", adminOnly, h.SiteCollection.Delete)
			}

			purchases := authorized.Group("/purchases")
			{
				purchases.POST("", h.Purchase.Create)
				purchases.GET("", h.Purchase.List)
				purchases.GET("/grouped", h.Purchase.Grouped)
				purchases.GET("/date-range", h.Purchase.DateRange)
				purchases.GET("/date/:date", h.Purchase.ByDate)
				purchases.GET("/cws-aggregated", h.Purchase.StationRollupYesterday)
				purchases.GET("/cws-aggregated/date-range", h.Purchase.StationRollupRange)
				purchases.GET("/cws-aggregated-all", h.Purchase.StationRollupAll)
				purchases.GET("/cws/:cwsId", h.Purchase.ListByStation)
				purchases.GET("/:id", h.Purchase.Get)
				purchases.PUT("/:id", h.Purchase.Update)
				purchases.DELETE("/:id", adminOnly, h.Purchase.Delete)
			}

			processing := authorized.Group("/processing")
			{
				processing.POST("", h.Processing.Start)
				processing.GET("/batch/:batchNo", h.Processing.GetByBatch)
				processing.PUT("/:id/status", h.Processing.SetStatus)
				processing.GET("/cws/:cwsId", h.Processing.ListByStation)
				processing.GET("/stats/:cwsId", h.Processing.Stats)
			}

			bagging := authorized.Group("/bagging-off")
			{
				bagging.POST("", h.BaggingOff.Reconcile)
				bagging.GET("", h.BaggingOff.List)
				bagging.GET("/report/completed", h.Report.Completed)
				bagging.GET("/report/summary", h.Report.Summary)
				bagging.GET("/batch/:batchNo", h.BaggingOff.ListByBatch)
				bagging.GET("/cws/:cwsId", h.BaggingOff.ListCompletedByStation)
				bagging.GET("/:id", h.BaggingOff.Get)
				bagging.PUT("/:id", h.BaggingOff.Update)
				bagging.DELETE("/:id", adminOnly, h.BaggingOff.Delete)
			}

			transfer := authorized.Group("/transfer")
			{
				transfer.POST("", h.Transfer.Create)
				transfer.GET("", h.Transfer.List)
				transfer.GET("/batch/:batchNo", h.Transfer.ListByBatch)
				transfer.GET("/cws/:cwsId", h.Transfer.ListByStation)
				transfer.GET("/bagging-off/:id", h.Transfer.ListByBaggingOff)
				transfer.PUT("/:id", h.Transfer.Update)
			}

			wet := authorized.Group("/wet-transfer")
			{
				wet.POST("", h.WetTransfer.Create)
				wet.GET("", h.WetTransfer.List)
				wet.POST("/receive", h.WetTransfer.Receive)
				wet.POST("/reject", h.WetTransfer.Reject)
				wet.GET("/summary/:cwsId", h.WetTransfer.Summary)
				wet.GET("/recent/:cwsId", h.WetTransfer.Recent)
				wet.GET("/batch/:batchNo", h.WetTransfer.SearchByBatch)
				wet.GET("/source/:cwsId", h.WetTransfer.ListBySource)
				wet.GET("/destination/:cwsId", h.WetTransfer.ListByDestination)
				wet.GET("/:id", h.WetTransfer.Get)
				wet.PUT("/:id", h.WetTransfer.Update)
				wet.DELETE("/:id", adminOnly, h.WetTransfer.Delete)
			}

			pricing := authorized.Group("/pricing")
			{
				pricing.GET("/global", h.Pricing.GlobalFees)
				pricing.POST("/global", adminOnly, h.Pricing.SetGlobalFees)
				pricing.GET("/cws-pricing/:cwsId", h.Pricing.StationPricing)
				pricing.POST("/cws-pricing", adminOnly, h.Pricing.SetStationPricing)
				pricing.GET("/site-fees/:siteCollectionId", h.Pricing.SiteCollectionFees)
				pricing.POST("/site-fees", adminOnly, h.Pricing.SetSiteCollectionFees)
			}

			reports := authorized.Group("/reports")
			{
				reports.GET("/summary.xlsx", h.Export.ExportSummary)
				reports.GET("/purchases.xlsx", h.Export.ExportPurchases)
			}
		}
	}

	return r
}
