package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/buildtrack/sitereport/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/rates/labor", handler.LaborRates)
		api.GET("/rates/equipment", handler.EquipmentRates)
		api.GET("/contract-items", handler.ContractItems)

		api.POST("/reports/carry-forward", handler.CarryForward)
		api.GET("/export", handler.Export)

		api.GET("/reports/:date", handler.GetReport)
		api.PATCH("/reports/:date", handler.UpdateMeta)
		api.GET("/reports/:date/summary", handler.GetSummary)
		api.GET("/reports/:date/document", handler.GetDocument)
		api.POST("/reports/:date/rows", handler.AddRow)
		api.PATCH("/reports/:date/rows/:id", handler.UpdateRow)
		api.DELETE("/reports/:date/rows/:id", handler.RemoveRow)
		api.POST("/reports/:date/submit", handler.Submit)
		api.POST("/reports/:date/email", handler.Email)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// NewEmailFn wires the Gin engine for the standalone report-email function.
func NewEmailFn(handler *handlers.EmailFnHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/send-report-email", handler.SendReportEmail)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("email function router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
