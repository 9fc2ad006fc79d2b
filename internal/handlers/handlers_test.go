package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/handlers"
	"github.com/SscSPs/cashbook_backend/internal/middleware"
	"github.com/SscSPs/cashbook_backend/internal/platform/config"
	"github.com/SscSPs/cashbook_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret  = "test-secret"
	testUserID     = "user-owner"
	testBusinessID = "biz-1"
)

// handlerSuite drives the real router, including AuthMiddleware, against mocked services.
type handlerSuite struct {
	suite.Suite
	router         *gin.Engine
	token          string
	changeRequests *MockChangeRequestService
	notifications  *MockNotificationService
	cashbook       *MockCashbookService
	reports        *MockReportService
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.changeRequests = new(MockChangeRequestService)
	s.notifications = new(MockNotificationService)
	s.cashbook = new(MockCashbookService)
	s.reports = new(MockReportService)

	cfg := &config.Config{
		JWTSecret:     testJWTSecret,
		IsProduction:  true,
		AuthRateLimit: "100-M",
		APIRateLimit:  "1000-M",
	}
	container := &portssvc.ServiceContainer{
		ChangeRequest: s.changeRequests,
		Notification:  s.notifications,
		Cashbook:      s.cashbook,
		Report:        s.reports,
	}

	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	s.Require().NoError(handlers.RegisterRoutes(s.router, cfg, container))

	token, _, err := utils.GenerateJWT(testUserID, testJWTSecret, time.Hour, "test")
	s.Require().NoError(err)
	s.token = token
}

func (s *handlerSuite) TearDownTest() {
	s.changeRequests.AssertExpectations(s.T())
	s.notifications.AssertExpectations(s.T())
	s.cashbook.AssertExpectations(s.T())
	s.reports.AssertExpectations(s.T())
}

// do sends an authenticated request. body is JSON-encoded unless it is nil.
func (s *handlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) TestHealth() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusOK, w.Code)
}

func (s *handlerSuite) TestRejectsMissingToken() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil))
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *handlerSuite) TestRejectsTokenSignedWithAnotherSecret() {
	token, _, err := utils.GenerateJWT(testUserID, "other-secret", time.Hour, "test")
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *handlerSuite) TestRateLimitHeadersOnAPIRoutes() {
	s.notifications.On("GetSummary", mockCtx, "", testUserID).
		Return(&domain.NotificationSummary{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/notifications/summary", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("1000", w.Header().Get("X-RateLimit-Limit"))
}
