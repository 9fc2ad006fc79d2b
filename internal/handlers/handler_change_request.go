package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// changeRequestHandler serves the approval workflow for staff edits and deletes.
type changeRequestHandler struct {
	changeRequestService portssvc.ChangeRequestSvcFacade
}

func newChangeRequestHandler(crs portssvc.ChangeRequestSvcFacade) *changeRequestHandler {
	return &changeRequestHandler{changeRequestService: crs}
}

func registerChangeRequestRoutes(business *gin.RouterGroup, changeRequestService portssvc.ChangeRequestSvcFacade) {
	h := newChangeRequestHandler(changeRequestService)

	requests := business.Group("/changerequests")
	{
		requests.GET("", h.listRequests)
		requests.POST("", h.createRequest)
		requests.GET("/summary", h.getSummary)
		requests.GET("/mine", h.listMyRequests)
		requests.GET("/:reqId", h.getRequest)
		requests.POST("/:reqId/review", h.reviewRequest)
		requests.DELETE("/:reqId", h.withdrawRequest)
	}
}

// listRequests godoc
// @Summary List change requests
// @Description Owner only. Newest first.
// @Tags changerequests
// @Produce json
// @Param id path string true "Business ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Success 200 {object} pagination.Page[domain.ChangeRequest]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/changerequests [get]
func (h *changeRequestHandler) listRequests(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.ListChangeRequestsParams
	if !bindQuery(c, &params) {
		return
	}

	page, err := h.changeRequestService.ListChangeRequests(c.Request.Context(), c.Param("id"), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list change requests")
		return
	}
	c.JSON(http.StatusOK, page)
}

// listMyRequests godoc
// @Summary List my change requests
// @Tags changerequests
// @Produce json
// @Param id path string true "Business ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Success 200 {object} pagination.Page[domain.ChangeRequest]
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/changerequests/mine [get]
func (h *changeRequestHandler) listMyRequests(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.ListChangeRequestsParams
	if !bindQuery(c, &params) {
		return
	}

	page, err := h.changeRequestService.ListMyChangeRequests(c.Request.Context(), c.Param("id"), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list change requests")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getSummary godoc
// @Summary Change request counts
// @Description All requests for the owner, the caller's own for staff.
// @Tags changerequests
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} domain.ChangeRequestSummary
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/changerequests/summary [get]
func (h *changeRequestHandler) getSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.changeRequestService.GetSummary(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to summarize change requests")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getRequest godoc
// @Summary Get a change request
// @Tags changerequests
// @Produce json
// @Param id path string true "Business ID"
// @Param reqId path string true "Change request ID"
// @Success 200 {object} domain.ChangeRequest
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /business/{id}/changerequests/{reqId} [get]
func (h *changeRequestHandler) getRequest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	request, err := h.changeRequestService.GetChangeRequest(c.Request.Context(), c.Param("id"), c.Param("reqId"), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve change request")
		return
	}
	c.JSON(http.StatusOK, request)
}

// createRequest godoc
// @Summary File a change request
// @Description Asks the owner to edit or delete an entry. Only one request may be pending per entry.
// @Tags changerequests
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param request body dto.CreateChangeRequestRequest true "Request"
// @Success 201 {object} domain.ChangeRequest
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "A request is already pending for this entry"
// @Security BearerAuth
// @Router /business/{id}/changerequests [post]
func (h *changeRequestHandler) createRequest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateChangeRequestRequest
	if !bindJSON(c, &req) {
		return
	}

	request, err := h.changeRequestService.CreateChangeRequest(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create change request")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Change request filed",
		slog.String("request_id", request.RequestID),
		slog.String("request_type", string(request.RequestType)))
	c.JSON(http.StatusCreated, request)
}

// reviewRequest godoc
// @Summary Approve or reject a change request
// @Description Owner only. Approval applies the change to the entry in the same transaction.
// @Tags changerequests
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param reqId path string true "Change request ID"
// @Param review body dto.ReviewChangeRequestRequest true "Decision"
// @Success 200 {object} domain.ChangeRequest
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Security BearerAuth
// @Router /business/{id}/changerequests/{reqId}/review [post]
func (h *changeRequestHandler) reviewRequest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.ReviewChangeRequestRequest
	if !bindJSON(c, &req) {
		return
	}

	request, err := h.changeRequestService.ReviewChangeRequest(c.Request.Context(), c.Param("id"), c.Param("reqId"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to review change request")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Change request reviewed",
		slog.String("request_id", request.RequestID),
		slog.String("status", string(request.Status)))
	c.JSON(http.StatusOK, request)
}

// withdrawRequest godoc
// @Summary Withdraw a change request
// @Description The requester drops a request that is still pending.
// @Tags changerequests
// @Param id path string true "Business ID"
// @Param reqId path string true "Change request ID"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Security BearerAuth
// @Router /business/{id}/changerequests/{reqId} [delete]
func (h *changeRequestHandler) withdrawRequest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.changeRequestService.WithdrawChangeRequest(c.Request.Context(), c.Param("id"), c.Param("reqId"), userID); err != nil {
		respondError(c, err, "Failed to withdraw change request")
		return
	}
	c.Status(http.StatusNoContent)
}
