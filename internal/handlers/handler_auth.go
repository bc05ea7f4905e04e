package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finai_backend/internal/apperrors"
	"github.com/SscSPs/finai_backend/internal/core/domain"
	portssvc "github.com/SscSPs/finai_backend/internal/core/ports/services"
	"github.com/SscSPs/finai_backend/internal/dto"
	"github.com/SscSPs/finai_backend/internal/middleware"
	"github.com/SscSPs/finai_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
)

// authHandler handles authentication related requests.
type authHandler struct {
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	googleOAuthService portssvc.GoogleOAuthSvcFacade
}

func newAuthHandler(services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		userService:        services.User,
		tokenService:       services.TokenService,
		googleOAuthService: services.GoogleOAuth,
	}
}

// registerAuthRoutes sets up the public routes for authentication.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services)
	limit := loginLimiter()

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", limit, h.register)
		auth.POST("/login", limit, h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
		auth.POST("/google", limit, h.googleLogin)
		auth.POST("/google/exchange-code", limit, h.exchangeCodeGoogle)
	}
}

// issueTokens creates a new access and refresh token pair and stores the refresh token hash.
func (h *authHandler) issueTokens(ctx context.Context, user *domain.User) (*dto.LoginResponse, error) {
	accessToken, expiresAt, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, refreshExpiresAt, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiresAt); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:                 accessToken,
		ExpiresAt:             expiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
		User:                  dto.ToUserResponse(user),
	}, nil
}

// register godoc
// @Summary Register new user
// @Description Creates a local account and signs it in.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "User Registration Info"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to register user")
		return
	}
	resp, err := h.issueTokens(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to sign in")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns an access and a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			return
		}
		handleServiceError(c, logger, err, "Failed to sign in")
		return
	}
	resp, err := h.issueTokens(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to sign in")
		return
	}
	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, resp)
}

// refresh godoc
// @Summary Refresh access token
// @Description Exchanges a valid refresh token for a new access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), req.UserID, req.RefreshToken)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to refresh token")
		return
	}
	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to refresh token")
		return
	}
	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: token, ExpiresAt: expiresAt})
}

// logout godoc
// @Summary Logout
// @Description Revokes the refresh token.
// @Tags auth
// @Accept json
// @Param refresh body dto.RefreshTokenRequest true "Refresh token"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), req.UserID, req.RefreshToken)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to logout")
		return
	}
	if err := h.userService.ClearRefreshToken(c.Request.Context(), user.UserID); err != nil {
		handleServiceError(c, logger, err, "Failed to logout")
		return
	}
	c.Status(http.StatusNoContent)
}

// googleLogin godoc
// @Summary Sign in with a Google ID token
// @Description Validates a Google Sign-In credential, creating or linking the user.
// @Tags auth
// @Accept json
// @Produce json
// @Param credential body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Google sign-in not configured"
// @Router /auth/google [post]
func (h *authHandler) googleLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	h.signInWithIDToken(c, logger, req.Credential)
}

// exchangeCodeGoogle godoc
// @Summary Sign in with a Google authorization code
// @Description Exchanges the code for Google tokens, validates the ID token and signs the user in.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Google sign-in not configured"
// @Router /auth/google/exchange-code [post]
func (h *authHandler) exchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to exchange authorization code")
		return
	}
	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.ErrorContext(ctx, "ID token not found in Google's token response")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to retrieve ID token from Google"})
		return
	}
	h.signInWithIDToken(c, logger, idTokenString)
}

func (h *authHandler) signInWithIDToken(c *gin.Context, logger *slog.Logger, idTokenString string) {
	ctx := c.Request.Context()
	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		handleServiceError(c, logger, err, "Invalid Google credential")
		return
	}

	email, name, emailVerified := googleClaims(payload)
	if email == "" || payload.Subject == "" {
		logger.ErrorContext(ctx, "Essential claims missing from Google ID token")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google credential lacks an email"})
		return
	}

	user, err := h.userService.CreateOAuthUser(ctx, name, email, domain.ProviderGoogle, payload.Subject, emailVerified)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to process user authentication")
		return
	}
	resp, err := h.issueTokens(ctx, user)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to sign in")
		return
	}
	logger.InfoContext(ctx, "User signed in with Google", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, resp)
}

func googleClaims(p *idtoken.Payload) (email, name string, emailVerified bool) {
	email, _ = p.Claims["email"].(string)
	name, _ = p.Claims["name"].(string)
	emailVerified, _ = p.Claims["email_verified"].(bool)
	return email, name, emailVerified
}
