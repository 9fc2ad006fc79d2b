package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps err to its status and writes {"error": ...}. Internal errors are logged
// and answered with fallback so causes never reach the client.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind := apperrors.KindOf(err)
	status := apperrors.HTTPStatus(kind)

	if kind == apperrors.KindInternal {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: fallback, Kind: string(kind)})
		return
	}

	logger.Warn(fallback, slog.String("error", err.Error()), slog.String("kind", string(kind)))
	c.JSON(status, dto.ErrorResponse{Error: clientMessage(err), Kind: string(kind)})
}

// clientMessage prefers the message of an AppError, whose text is written for users.
func clientMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// bindJSON binds the body into req and answers 400 when it does not parse or validate.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Kind: string(apperrors.KindValidation)})
		return false
	}
	return true
}

// bindQuery binds query parameters into params and answers 400 when they are invalid.
func bindQuery(c *gin.Context, params any) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error(), Kind: string(apperrors.KindValidation)})
		return false
	}
	return true
}

// currentUser returns the authenticated caller or answers 401.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized", Kind: string(apperrors.KindUnauthorized)})
		return "", false
	}
	return userID, true
}

// dateRange parses optional startDate/endDate bounds, answering 400 on bad input.
func dateRange(c *gin.Context, p dto.DateRangeParams) (domain.DateRange, bool) {
	dr, err := p.ToDateRange()
	if err != nil {
		respondError(c, err, "Invalid date range")
		return dr, false
	}
	return dr, true
}
