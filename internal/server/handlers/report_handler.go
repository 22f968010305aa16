package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/buildtrack/sitereport/internal/domain/models"
	"github.com/buildtrack/sitereport/internal/domain/rates"
	"github.com/buildtrack/sitereport/internal/service/report"
)

// ReportHandler handles the daily-report editing and export HTTP surface.
type ReportHandler struct {
	svc    *report.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *report.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

type addRowRequest struct {
	Section models.Section `json:"section" binding:"required"`
}

type updateFieldRequest struct {
	Section models.Section `json:"section" binding:"required"`
	Field   string         `json:"field" binding:"required"`
	Value   any            `json:"value"`
}

type updateMetaRequest struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

type carryForwardRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

type emailRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

func parseDate(c *gin.Context) (string, bool) {
	date := c.Param("date")
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return "", false
	}
	return date, true
}

func parseRowID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid row id"})
		return 0, false
	}
	return id, true
}

// GetReport returns the record for a date. Reads never create records.
func (h *ReportHandler) GetReport(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}

	rec, err := h.svc.Record(date)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report for date"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// GetSummary returns the cost summary for a date.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(date)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report for date"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetDocument returns the shareable report document (the copy path).
func (h *ReportHandler) GetDocument(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}

	doc, err := h.svc.BuildDocument(date)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report for date"})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// AddRow appends a default row to one of the record's sections.
func (h *ReportHandler) AddRow(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}

	var req addRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add-row payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	row, err := h.svc.AddRow(date, req.Section)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, row)
}

// UpdateRow assigns one field of one row and returns the updated record.
func (h *ReportHandler) UpdateRow(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}
	rowID, ok := parseRowID(c)
	if !ok {
		return
	}

	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update-field payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec, err := h.svc.UpdateField(date, req.Section, rowID, req.Field, req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// RemoveRow drops one row and returns the updated record.
func (h *ReportHandler) RemoveRow(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}
	rowID, ok := parseRowID(c)
	if !ok {
		return
	}

	section := models.Section(c.Query("section"))
	rec, err := h.svc.RemoveRow(date, section, rowID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// UpdateMeta assigns one of the record's scalar fields.
func (h *ReportHandler) UpdateMeta(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}

	var req updateMetaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update-meta payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec := h.svc.UpdateMeta(date, req.Field, req.Value)
	c.JSON(http.StatusOK, rec)
}

// CarryForward clones a prior date's roster into a new date.
func (h *ReportHandler) CarryForward(c *gin.Context) {
	var req carryForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid carry-forward payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	for _, date := range []string{req.From, req.To} {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
	}

	rec, err := h.svc.CarryForward(req.From, req.To)
	if err != nil {
		if errors.Is(err, report.ErrNoPriorReport) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no prior report"})
			return
		}
		h.logger.Error("carry-forward failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "carry-forward failed"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Export serializes the whole store as a downloadable JSON snapshot.
func (h *ReportHandler) Export(c *gin.Context) {
	snapshot := h.svc.ExportSnapshot()

	filename := fmt.Sprintf("bd-obra-%s.json", time.Now().UTC().Format(models.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, snapshot)
}

// Submit archives the day's report and appends its summary to the ledger.
func (h *ReportHandler) Submit(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}

	summary, err := h.svc.Submit(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, report.ErrNoReport) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no report for date"})
			return
		}
		h.logger.Error("submit failed", zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to export report"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Email ships the day's report to the report-email function.
func (h *ReportHandler) Email(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}

	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid email payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	data, err := h.svc.EmailReport(c.Request.Context(), date, req.Recipient)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrNoReport):
			c.JSON(http.StatusNotFound, gin.H{"error": "no report for date"})
		case errors.Is(err, report.ErrEmailNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "email is not configured"})
		default:
			h.logger.Error("email failed", zap.String("date", date), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "unable to prepare report email"})
		}
		return
	}

	c.JSON(http.StatusOK, data)
}

// LaborRates serves the labor tariff table for UI dropdowns.
func (h *ReportHandler) LaborRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"rates":      rates.LaborRates(),
		"fieldRoles": rates.FieldLaborRoles,
		"adminRoles": rates.AdminLaborRoles,
	})
}

// EquipmentRates serves the equipment tariff table.
func (h *ReportHandler) EquipmentRates(c *gin.Context) {
	c.JSON(http.StatusOK, rates.EquipmentRates())
}

// ContractItems serves the contract line-item reference list.
func (h *ReportHandler) ContractItems(c *gin.Context) {
	c.JSON(http.StatusOK, rates.ContractItems())
}
