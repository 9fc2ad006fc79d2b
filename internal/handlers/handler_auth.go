package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
	"github.com/SscSPs/cashbook_backend/internal/dto"
	"github.com/SscSPs/cashbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles sign-up, sign-in and token refresh.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	googleOAuth  portssvc.GoogleOAuthHandlerSvcFacade
}

func newAuthHandler(services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		userService:  services.User,
		tokenService: services.TokenService,
		googleOAuth:  services.GoogleOAuthHandler,
	}
}

// registerAuthRoutes sets up the public authentication routes. limit guards every
// credential-accepting endpoint; logout needs a valid access token.
func registerAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, limit gin.HandlerFunc, requireAuth gin.HandlerFunc) {
	h := newAuthHandler(services)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", limit, h.register)
		auth.POST("/login", limit, h.login)
		auth.POST("/refresh", limit, h.refresh)
		auth.POST("/google/exchange-code", limit, h.exchangeGoogleCode)
		auth.POST("/logout", requireAuth, h.logout)
	}
}

// issueTokens answers with a fresh access and refresh token for user.
func (h *authHandler) issueTokens(c *gin.Context, status int, user *domain.User) {
	ctx := c.Request.Context()
	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}
	refreshToken, refreshExpiresAt, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		respondError(c, err, "Failed to generate token")
		return
	}

	c.JSON(status, dto.AuthResponse{
		AccessToken:           accessToken,
		ExpiresAt:             expiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
		User:                  dto.ToUserResponse(user),
	})
}

// register godoc
// @Summary Register new user
// @Description Creates a local account and signs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User registered", slog.String("user_id", user.UserID))
	h.issueTokens(c, http.StatusCreated, user)
}

// login godoc
// @Summary User login
// @Description Authenticates with email and password and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	h.issueTokens(c, http.StatusOK, user)
}

// refresh godoc
// @Summary Refresh tokens
// @Description Trades a valid refresh token for a new token pair. The old refresh token stops working.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), req.UserID, req.RefreshToken)
	if err != nil {
		respondError(c, err, "Failed to refresh token")
		return
	}

	h.issueTokens(c, http.StatusOK, user)
}

// logout godoc
// @Summary Log out
// @Description Revokes the caller's refresh token. Access tokens expire on their own.
// @Tags auth
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.tokenService.RevokeRefreshToken(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to log out")
		return
	}
	c.Status(http.StatusNoContent)
}

// exchangeGoogleCode godoc
// @Summary Sign in with Google
// @Description Exchanges the authorization code from Google's popup flow, finds or creates the user and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *authHandler) exchangeGoogleCode(c *gin.Context) {
	var req dto.GoogleExchangeCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	info, err := h.googleOAuth.ExchangeCodeForUserInfo(ctx, req.Code)
	if err != nil {
		respondError(c, err, "Google sign-in failed")
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, *info)
	if err != nil {
		respondError(c, err, "Google sign-in failed")
		return
	}

	middleware.GetLoggerFromCtx(ctx).Info("Google sign-in", slog.String("user_id", user.UserID))
	h.issueTokens(c, http.StatusOK, user)
}
