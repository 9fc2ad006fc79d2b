package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// notificationHandler serves the caller's inbox. Notifications are always scoped to
// the authenticated recipient.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: ns}
}

func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.GET("/summary", h.getSummary)
		notifications.POST("/read-all", h.markAllAsRead)
		notifications.POST("/:notificationId/read", h.markAsRead)
	}
}

// listNotifications godoc
// @Summary List notifications
// @Description Newest first, optionally unread only or limited to one business.
// @Tags notifications
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param businessId query string false "Business ID"
// @Param unreadOnly query bool false "Only unread"
// @Success 200 {object} pagination.Page[domain.Notification]
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.ListNotificationsParams
	if !bindQuery(c, &params) {
		return
	}

	page, err := h.notificationService.ListNotifications(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, page)
}

// getSummary godoc
// @Summary Notification counts
// @Description Unread and total counts, across all businesses or for one.
// @Tags notifications
// @Produce json
// @Param businessId query string false "Business ID"
// @Success 200 {object} domain.NotificationSummary
// @Security BearerAuth
// @Router /notifications/summary [get]
func (h *notificationHandler) getSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.NotificationScopeParams
	if !bindQuery(c, &params) {
		return
	}

	summary, err := h.notificationService.GetSummary(c.Request.Context(), params.BusinessID, userID)
	if err != nil {
		respondError(c, err, "Failed to summarize notifications")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// markAsRead godoc
// @Summary Mark a notification read
// @Description Idempotent.
// @Tags notifications
// @Produce json
// @Param notificationId path string true "Notification ID"
// @Success 200 {object} domain.Notification
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{notificationId}/read [post]
func (h *notificationHandler) markAsRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkAsRead(c.Request.Context(), c.Param("notificationId"), userID)
	if err != nil {
		respondError(c, err, "Failed to mark notification read")
		return
	}
	c.JSON(http.StatusOK, notification)
}

// markAllAsRead godoc
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Param businessId query string false "Business ID"
// @Success 200 {object} dto.MarkAllReadResponse
// @Security BearerAuth
// @Router /notifications/read-all [post]
func (h *notificationHandler) markAllAsRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var params dto.NotificationScopeParams
	if !bindQuery(c, &params) {
		return
	}

	updated, err := h.notificationService.MarkAllAsRead(c.Request.Context(), params.BusinessID, userID)
	if err != nil {
		respondError(c, err, "Failed to mark notifications read")
		return
	}
	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Updated: updated})
}
