// Package httpapi exposes the session lifecycle over HTTP using echo.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/postwall/internal/common"
	"github.com/dmitrijs2005/postwall/internal/logging"
	"github.com/dmitrijs2005/postwall/internal/server/config"
	"github.com/dmitrijs2005/postwall/internal/server/models"
	"github.com/dmitrijs2005/postwall/internal/server/services"
	"github.com/labstack/echo/v4"
)

const refreshCookieName = "refreshToken"

// SessionService is the business-logic surface the HTTP layer depends on.
type SessionService interface {
	Register(ctx context.Context, email, nickname, password string) (*services.AuthResult, error)
	Activate(ctx context.Context, activationLink string) error
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Logout(ctx context.Context, refreshToken string) (int64, error)
	Refresh(ctx context.Context, refreshToken string) (*services.AuthResult, error)
}

// Handler holds the route handlers for the auth API.
type Handler struct {
	service             SessionService
	logger              logging.Logger
	clientURL           string
	refreshCookieMaxAge time.Duration
}

// NewHandler constructs a Handler bound to the given service and config.
func NewHandler(s SessionService, l logging.Logger, cfg *config.Config) *Handler {
	return &Handler{
		service:             s,
		logger:              l.With("module", "httpapi"),
		clientURL:           cfg.ClientURL,
		refreshCookieMaxAge: cfg.RefreshTokenValidityDuration,
	}
}

// RegisterRoutes attaches the auth endpoints to e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/registration", h.Registration)
	e.GET("/api/activate/:link", h.Activate)
	e.POST("/api/login", h.Login)
	e.POST("/api/logout", h.Logout)
	e.GET("/api/refresh", h.Refresh)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	User         models.UserView `json:"user"`
}

type logoutResponse struct {
	Deleted int64 `json:"deleted"`
}

// Registration creates a new user and starts its first session.
func (h *Handler) Registration(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Email == "" || req.Nickname == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email, nickname and password are required"})
	}

	result, err := h.service.Register(c.Request().Context(), req.Email, req.Nickname, req.Password)
	if err != nil {
		return h.errorResponse(c, err)
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)
	return c.JSON(http.StatusOK, newAuthResponse(result))
}

// Activate confirms an activation link and redirects to the client app.
func (h *Handler) Activate(c echo.Context) error {
	if err := h.service.Activate(c.Request().Context(), c.Param("link")); err != nil {
		return h.errorResponse(c, err)
	}
	return c.Redirect(http.StatusFound, h.clientURL)
}

// Login verifies credentials and starts a session.
func (h *Handler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email and password are required"})
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.errorResponse(c, err)
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)
	return c.JSON(http.StatusOK, newAuthResponse(result))
}

// Logout revokes the session carried in the refresh cookie and clears it.
func (h *Handler) Logout(c echo.Context) error {
	deleted, err := h.service.Logout(c.Request().Context(), h.refreshCookieValue(c))
	if err != nil {
		return h.errorResponse(c, err)
	}

	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, logoutResponse{Deleted: deleted})
}

// Refresh rotates the session carried in the refresh cookie.
func (h *Handler) Refresh(c echo.Context) error {
	result, err := h.service.Refresh(c.Request().Context(), h.refreshCookieValue(c))
	if err != nil {
		return h.errorResponse(c, err)
	}

	h.setRefreshCookie(c, result.Tokens.RefreshToken)
	return c.JSON(http.StatusOK, newAuthResponse(result))
}

func newAuthResponse(r *services.AuthResult) authResponse {
	return authResponse{
		AccessToken:  r.Tokens.AccessToken,
		RefreshToken: r.Tokens.RefreshToken,
		User:         r.User,
	}
}

func (h *Handler) refreshCookieValue(c echo.Context) string {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (h *Handler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.refreshCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// errorResponse maps service errors to HTTP statuses. Validation and
// credential failures are 400, session failures are 401, anything
// unexpected is logged and returned as 500.
func (h *Handler) errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrUserExists),
		errors.Is(err, common.ErrInvalidActivationLink),
		errors.Is(err, common.ErrUserNotFound),
		errors.Is(err, common.ErrWrongPassword):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, common.ErrorUnauthorized):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	default:
		h.logger.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err.Error())
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
