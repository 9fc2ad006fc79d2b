package handlers

import (
	"fmt"

	"github.com/SscSPs/cashbook_backend/cmd/docs"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/middleware"
	"github.com/SscSPs/cashbook_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return fmt.Errorf("register validators: %w", err)
		}
	}

	r.GET("/health", getHealth)

	authLimiter, err := middleware.NewLimiter(cfg.AuthRateLimit, "auth")
	if err != nil {
		return fmt.Errorf("auth rate limit: %w", err)
	}
	apiLimiter, err := middleware.NewLimiter(cfg.APIRateLimit, "api")
	if err != nil {
		return fmt.Errorf("api rate limit: %w", err)
	}

	requireAuth := middleware.AuthMiddleware(cfg.JWTSecret)

	// Public authentication routes
	registerAuthRoutes(r.Group("/api/v1"), services, middleware.RateLimit(authLimiter), requireAuth)

	setupAPIV1Routes(r, cfg, services, requireAuth, middleware.RateLimit(apiLimiter))

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	requireAuth gin.HandlerFunc,
	limit gin.HandlerFunc,
) {
	// Auth runs first so the limiter keys on the user
	v1 := r.Group("/api/v1", requireAuth, limit)

	registerUserRoutes(v1, service.User)
	registerNotificationRoutes(v1, service.Notification)

	business := registerBusinessRoutes(v1, service.Business)
	registerCategoryRoutes(business, service.Category)
	registerCashbookRoutes(business, service.Cashbook, service.Report)
	registerBankRoutes(business, service.Bank)
	registerPartyRoutes(business, service.Party, service.Report)
	registerChangeRequestRoutes(business, service.ChangeRequest)
	registerReportRoutes(business, service.Report)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
