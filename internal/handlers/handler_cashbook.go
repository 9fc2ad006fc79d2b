package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cashbookHandler serves cash entries. Edits and deletes go through the approval gate.
type cashbookHandler struct {
	cashbookService portssvc.CashbookSvcFacade
	reportService   portssvc.ReportSvcFacade
}

func newCashbookHandler(cs portssvc.CashbookSvcFacade, rs portssvc.ReportSvcFacade) *cashbookHandler {
	return &cashbookHandler{cashbookService: cs, reportService: rs}
}

func registerCashbookRoutes(business *gin.RouterGroup, cashbookService portssvc.CashbookSvcFacade, reportService portssvc.ReportSvcFacade) {
	h := newCashbookHandler(cashbookService, reportService)

	cashbook := business.Group("/cashbook")
	{
		cashbook.GET("", h.listEntries)
		cashbook.POST("", h.createEntry)
		cashbook.GET("/export", h.exportEntries)
		cashbook.GET("/:entryId", h.getEntry)
		cashbook.PUT("/:entryId", h.updateEntry)
		cashbook.DELETE("/:entryId", h.deleteEntry)
	}
}

// mutationStatus is 200 for an applied change and 202 when a change request was filed instead.
func mutationStatus(result *dto.MutationResult) int {
	if result.Applied {
		return http.StatusOK
	}
	return http.StatusAccepted
}

// listEntries godoc
// @Summary List cash entries
// @Description Lists entries with running balances. Balances always follow date order, whatever the display sort.
// @Tags cashbook
// @Produce json
// @Param id path string true "Business ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param type query string false "INCOME or EXPENSE"
// @Param categoryId query string false "Category ID"
// @Param partyId query string false "Party ID"
// @Param sort query string false "asc or desc" default(desc)
// @Success 200 {object} dto.CashbookPage
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/cashbook [get]
func (h *cashbookHandler) listEntries(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.ListCashEntriesParams
	if !bindQuery(c, &params) {
		return
	}

	page, err := h.cashbookService.ListEntries(c.Request.Context(), c.Param("id"), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, page)
}

// createEntry godoc
// @Summary Create a cash entry
// @Description Owners and accountants record income or expense.
// @Tags cashbook
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param entry body dto.CreateCashEntryRequest true "Entry"
// @Success 201 {object} domain.CashEntry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/cashbook [post]
func (h *cashbookHandler) createEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateCashEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.cashbookService.CreateEntry(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Cash entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, entry)
}

// getEntry godoc
// @Summary Get a cash entry
// @Tags cashbook
// @Produce json
// @Param id path string true "Business ID"
// @Param entryId path string true "Entry ID"
// @Success 200 {object} domain.CashEntry
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/cashbook/{entryId} [get]
func (h *cashbookHandler) getEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entry, err := h.cashbookService.GetEntry(c.Request.Context(), c.Param("id"), c.Param("entryId"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// updateEntry godoc
// @Summary Update a cash entry
// @Description Applies the change when the caller may edit directly (200). Otherwise files a change request for the owner (202); reason is then required.
// @Tags cashbook
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param entryId path string true "Entry ID"
// @Param entry body dto.UpdateCashEntryRequest true "Changes"
// @Success 200 {object} dto.MutationResult
// @Success 202 {object} dto.MutationResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "A request is already pending for this entry"
// @Security BearerAuth
// @Router /business/{id}/cashbook/{entryId} [put]
func (h *cashbookHandler) updateEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateCashEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.cashbookService.UpdateEntry(c.Request.Context(), c.Param("id"), c.Param("entryId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update entry")
		return
	}
	c.JSON(mutationStatus(result), result)
}

// deleteEntry godoc
// @Summary Delete a cash entry
// @Description Deletes when the caller may delete directly (200). Otherwise files a change request (202); the optional body then must carry a reason.
// @Tags cashbook
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param entryId path string true "Entry ID"
// @Param body body dto.DeleteCashEntryRequest false "Reason"
// @Success 200 {object} dto.MutationResult
// @Success 202 {object} dto.MutationResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/cashbook/{entryId} [delete]
func (h *cashbookHandler) deleteEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.DeleteCashEntryRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	if req.Reason == "" {
		req.Reason = c.Query("reason")
	}

	result, err := h.cashbookService.DeleteEntry(c.Request.Context(), c.Param("id"), c.Param("entryId"), req.Reason, userID)
	if err != nil {
		respondError(c, err, "Failed to delete entry")
		return
	}
	c.JSON(mutationStatus(result), result)
}

// exportEntries godoc
// @Summary Export the cashbook
// @Description Downloads the entries of a date range as an Excel workbook.
// @Tags cashbook
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Business ID"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/cashbook/export [get]
func (h *cashbookHandler) exportEntries(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.DateRangeParams
	if !bindQuery(c, &params) {
		return
	}
	dates, ok := dateRange(c, params)
	if !ok {
		return
	}

	file, err := h.reportService.ExportCashbook(c.Request.Context(), c.Param("id"), dates, userID)
	if err != nil {
		respondError(c, err, "Failed to export cashbook")
		return
	}
	sendFile(c, file)
}

// sendFile writes an export as an attachment.
func sendFile(c *gin.Context, file *portssvc.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
