package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/buildtrack/sitereport/internal/domain/models"
	"github.com/buildtrack/sitereport/internal/service/emailer"
)

// EmailFnHandler serves the report-email function endpoint. It is
// stateless: every request carries the full record to render.
type EmailFnHandler struct {
	logger *zap.Logger
}

// NewEmailFnHandler constructs the function's HTTP handler.
func NewEmailFnHandler(logger *zap.Logger) *EmailFnHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailFnHandler{logger: logger}
}

// SendReportEmail renders the posted record into a prepared email. The
// function stops at preparing the message; delivery belongs to whatever
// provider the caller plugs in.
func (h *EmailFnHandler) SendReportEmail(c *gin.Context) {
	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid email request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.RecipientEmail == "" || req.ReportDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	data := emailer.Render(req)

	h.logger.Info("report email rendered",
		zap.String("date", req.ReportDate),
		zap.String("recipient", req.RecipientEmail))

	c.JSON(http.StatusOK, models.EmailResponse{
		Success:   true,
		Message:   "Report prepared for email",
		EmailData: data,
	})
}
