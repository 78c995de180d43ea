package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"yi_connect_echo/internal/config"
	"yi_connect_echo/internal/models"
	"yi_connect_echo/internal/services"
	"yi_connect_echo/internal/views"
)

const sessionCookie = "session"

// SessionVerifier is the part of the Firebase auth client used for sessions
type SessionVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	SessionCookie(ctx context.Context, idToken string, expiresIn time.Duration) (string, error)
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*auth.Token, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authClient SessionVerifier
	nav        *services.NavigationService
	db         *gorm.DB
	cfg        config.Config
}

// NewAuthHandler creates a new AuthHandler. authClient may be nil when Firebase
// is not configured and db may be nil when users are not recorded.
func NewAuthHandler(authClient SessionVerifier, nav *services.NavigationService, db *gorm.DB, cfg config.Config) *AuthHandler {
	return &AuthHandler{authClient: authClient, nav: nav, db: db, cfg: cfg}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(c echo.Context) error {
	props := views.LoginProps{
		FirebaseAPIKey:     h.cfg.FirebaseAPIKey,
		FirebaseAuthDomain: h.cfg.FirebaseAuthDomain,
		FirebaseProjectID:  h.cfg.FirebaseProjectID,
	}
	if c.QueryParam("error") == "auth_not_configured" {
		props.Error = "Sign-in is not configured on this server."
	}
	return views.LoginPage(props).Render(c.Request().Context(), c.Response())
}

// HandleLogin verifies the Firebase ID token and creates a session cookie
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	if h.authClient == nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Firebase not initialized",
		})
	}

	// Get ID Token from Authorization Header
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Missing authorization header",
		})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid authorization format",
		})
	}

	token, err := h.authClient.VerifyIDToken(c.Request().Context(), tokenString)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Invalid token",
		})
	}

	if err := services.SyncUser(c.Request().Context(), h.db, userFromToken(token)); err != nil {
		slog.Warn("record signed-in user", "uid", token.UID, "error", err)
	}

	// Create Session Cookie (valid for 5 days)
	expiresIn := time.Hour * 24 * 5
	cookieValue, err := h.authClient.SessionCookie(c.Request().Context(), tokenString, expiresIn)
	if err != nil {
		slog.Error("create session cookie", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create session",
		})
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    cookieValue,
		MaxAge:   int(expiresIn.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
	})
}

// HandleLogout clears the session cookie and the user's navigation state
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	if h.authClient != nil && h.nav != nil {
		if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
			if token, err := h.authClient.VerifySessionCookie(c.Request().Context(), cookie.Value); err == nil {
				c.Set(ContextUserUID, token.UID)
				if role, ok := token.Claims["role"].(string); ok {
					c.Set(ContextUserRole, role)
				}
				if err := h.nav.Reset(c.Request().Context(), navUserFromContext(c)); err != nil {
					slog.Warn("reset navigation state on logout", "uid", token.UID, "error", err)
				}
			}
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	})

	return c.JSON(http.StatusOK, map[string]string{
		"status": "logged out",
	})
}

func userFromToken(token *auth.Token) models.User {
	u := models.User{FirebaseUID: token.UID}
	u.Email, _ = token.Claims["email"].(string)
	u.Name, _ = token.Claims["name"].(string)
	role, _ := token.Claims["role"].(string)
	u.Role = models.ParseUserRole(role)
	return u
}
