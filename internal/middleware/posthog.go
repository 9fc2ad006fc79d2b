package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/cashbook_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware records one analytics event per successful authenticated mutation.
// Reads are not tracked.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		eventName := EventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if businessID := c.Param("id"); businessID != "" && strings.Contains(c.FullPath(), "/business/") {
			props["business_id"] = businessID
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// EventName turns a route template into an event name, e.g.
// POST /api/v1/business/:id/changerequests/:reqId/review -> post_business_changerequests_review.
func EventName(method, fullPath string) string {
	if fullPath == "" {
		return ""
	}
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(strings.TrimPrefix(fullPath, "/api/v1"), "/") {
		if seg == "" || strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*") {
			continue
		}
		parts = append(parts, seg)
	}
	return strings.Join(parts, "_")
}
