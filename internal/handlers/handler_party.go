package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// partyHandler serves customers and suppliers and their ledgers.
type partyHandler struct {
	partyService  portssvc.PartySvcFacade
	reportService portssvc.ReportSvcFacade
}

func newPartyHandler(ps portssvc.PartySvcFacade, rs portssvc.ReportSvcFacade) *partyHandler {
	return &partyHandler{partyService: ps, reportService: rs}
}

func registerPartyRoutes(business *gin.RouterGroup, partyService portssvc.PartySvcFacade, reportService portssvc.ReportSvcFacade) {
	h := newPartyHandler(partyService, reportService)

	parties := business.Group("/parties")
	{
		parties.GET("", h.listParties)
		parties.POST("", h.createParty)
		parties.GET("/:partyId", h.getParty)
		parties.PUT("/:partyId", h.updateParty)
		parties.DELETE("/:partyId", h.deleteParty)
		parties.GET("/:partyId/ledger", h.getLedger)
		parties.GET("/:partyId/ledger/export", h.exportLedger)
	}
}

// listParties godoc
// @Summary List parties
// @Tags parties
// @Produce json
// @Param id path string true "Business ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param type query string false "CUSTOMER, SUPPLIER or BOTH"
// @Param search query string false "Name, phone or email contains"
// @Success 200 {object} pagination.Page[domain.Party]
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.ListPartiesParams
	if !bindQuery(c, &params) {
		return
	}

	page, err := h.partyService.ListParties(c.Request.Context(), c.Param("id"), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list parties")
		return
	}
	c.JSON(http.StatusOK, page)
}

// createParty godoc
// @Summary Create a party
// @Tags parties
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param party body dto.CreatePartyRequest true "Party"
// @Success 201 {object} domain.Party
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/parties [post]
func (h *partyHandler) createParty(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreatePartyRequest
	if !bindJSON(c, &req) {
		return
	}

	party, err := h.partyService.CreateParty(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create party")
		return
	}
	c.JSON(http.StatusCreated, party)
}

// getParty godoc
// @Summary Get a party
// @Tags parties
// @Produce json
// @Param id path string true "Business ID"
// @Param partyId path string true "Party ID"
// @Success 200 {object} domain.Party
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/parties/{partyId} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	party, err := h.partyService.GetParty(c.Request.Context(), c.Param("id"), c.Param("partyId"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve party")
		return
	}
	c.JSON(http.StatusOK, party)
}

// updateParty godoc
// @Summary Update a party
// @Tags parties
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param partyId path string true "Party ID"
// @Param party body dto.UpdatePartyRequest true "Changes"
// @Success 200 {object} domain.Party
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/parties/{partyId} [put]
func (h *partyHandler) updateParty(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdatePartyRequest
	if !bindJSON(c, &req) {
		return
	}

	party, err := h.partyService.UpdateParty(c.Request.Context(), c.Param("id"), c.Param("partyId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update party")
		return
	}
	c.JSON(http.StatusOK, party)
}

// deleteParty godoc
// @Summary Delete a party
// @Description Deactivates the party; its entries stay.
// @Tags parties
// @Param id path string true "Business ID"
// @Param partyId path string true "Party ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/parties/{partyId} [delete]
func (h *partyHandler) deleteParty(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.partyService.DeleteParty(c.Request.Context(), c.Param("id"), c.Param("partyId"), userID); err != nil {
		respondError(c, err, "Failed to delete party")
		return
	}
	c.Status(http.StatusNoContent)
}

// getLedger godoc
// @Summary Party ledger
// @Description Statement of a party with the balance brought forward from before startDate and running balances.
// @Tags parties
// @Produce json
// @Param id path string true "Business ID"
// @Param partyId path string true "Party ID"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {object} domain.PartyLedger
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/parties/{partyId}/ledger [get]
func (h *partyHandler) getLedger(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.PartyLedgerParams
	if !bindQuery(c, &params) {
		return
	}
	dates, ok := dateRange(c, params.DateRangeParams)
	if !ok {
		return
	}

	ledger, err := h.partyService.GetLedger(c.Request.Context(), c.Param("id"), c.Param("partyId"), dates, userID)
	if err != nil {
		respondError(c, err, "Failed to build ledger")
		return
	}
	c.JSON(http.StatusOK, ledger)
}

// exportLedger godoc
// @Summary Export a party ledger
// @Description Downloads the ledger as an Excel workbook or a PDF statement.
// @Tags parties
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Business ID"
// @Param partyId path string true "Party ID"
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/parties/{partyId}/ledger/export [get]
func (h *partyHandler) exportLedger(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.ExportParams
	if !bindQuery(c, &params) {
		return
	}
	dates, ok := dateRange(c, params.DateRangeParams)
	if !ok {
		return
	}

	file, err := h.reportService.ExportPartyLedger(c.Request.Context(), c.Param("id"), c.Param("partyId"), dates, params.Format, userID)
	if err != nil {
		respondError(c, err, "Failed to export ledger")
		return
	}
	sendFile(c, file)
}
