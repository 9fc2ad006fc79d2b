package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

func newReportHandler(rs portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: rs}
}

func registerReportRoutes(business *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)

	reports := business.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
	}
}

// getSummary godoc
// @Summary Cashbook summary
// @Description Income, expense, net balance and per-category totals over a date range, plus the bank balance.
// @Tags reports
// @Produce json
// @Param id path string true "Business ID"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} dto.ReportSummary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/reports/summary [get]
func (h *reportHandler) getSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.ReportSummaryParams
	if !bindQuery(c, &params) {
		return
	}
	dates, ok := dateRange(c, params.DateRangeParams)
	if !ok {
		return
	}

	summary, err := h.reportService.GetSummary(c.Request.Context(), c.Param("id"), dates, userID)
	if err != nil {
		respondError(c, err, "Failed to build report")
		return
	}
	c.JSON(http.StatusOK, summary)
}
