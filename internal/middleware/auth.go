package middleware

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"yi_connect_echo/internal/models"
)

// SessionCookieVerifier verifies Firebase session cookies
type SessionCookieVerifier interface {
	VerifySessionCookie(ctx context.Context, sessionCookie string) (*auth.Token, error)
}

// RequireAuth returns a middleware that verifies Firebase session cookies.
// The role custom claim selects the user's navigation shell.
func RequireAuth(verifier SessionCookieVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if verifier == nil {
				return unauthenticated(c, "/login?error=auth_not_configured")
			}

			cookie, err := c.Cookie("session")
			if err != nil || cookie.Value == "" {
				return unauthenticated(c, "/login")
			}

			decodedToken, err := verifier.VerifySessionCookie(c.Request().Context(), cookie.Value)
			if err != nil {
				// Invalid session, clear cookie and redirect
				c.SetCookie(&http.Cookie{
					Name:     "session",
					Value:    "",
					MaxAge:   -1,
					HttpOnly: true,
					Path:     "/",
				})
				return unauthenticated(c, "/login")
			}

			c.Set("userUID", decodedToken.UID)
			if email, ok := decodedToken.Claims["email"].(string); ok {
				c.Set("userEmail", email)
			}
			if name, ok := decodedToken.Claims["name"].(string); ok {
				c.Set("userName", name)
			}
			role, _ := decodedToken.Claims["role"].(string)
			c.Set("userRole", models.ParseUserRole(role))

			return next(c)
		}
	}
}

// unauthenticated redirects page requests and rejects navigation API calls
func unauthenticated(c echo.Context, loginURL string) error {
	if isAPIPath(c.Request().URL.Path) {
		return echo.NewHTTPError(http.StatusUnauthorized)
	}
	return c.Redirect(http.StatusTemporaryRedirect, loginURL)
}

func isAPIPath(path string) bool {
	return path == "/nav" || len(path) > 5 && path[:5] == "/nav/"
}
