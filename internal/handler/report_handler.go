package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/institute-backend/internal/response"
	"github.com/stemsi/institute-backend/internal/service"
)

// ReportHandler serves the financial reports as JSON rows.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// IncomeByClass godoc
// GET /api/v1/reports/income-by-class
func (h *ReportHandler) IncomeByClass(c *gin.Context) {
	rows, err := h.reportService.IncomeByClass(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rows": rows})
}

// ExpenseByClass godoc
// GET /api/v1/reports/expense-by-class
func (h *ReportHandler) ExpenseByClass(c *gin.Context) {
	rows, err := h.reportService.ExpenseByClass(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rows": rows})
}

// ProfitLoss godoc
// GET /api/v1/reports/profit-loss
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	rows, err := h.reportService.ProfitLossByInstitute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rows": rows})
}

// Summary godoc
// GET /api/v1/reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary)
}
