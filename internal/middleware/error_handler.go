package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"yi_connect_echo/internal/views"
)

// CustomErrorHandler creates a custom error handler for Echo.
// Navigation API routes get a JSON body, pages get the error page.
func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		slog.Error("error after response was committed", "path", c.Request().URL.Path, "error", err)
		return
	}

	code := http.StatusInternalServerError
	errorTitle := "Internal Server Error"
	errorMessage := ""

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code

		if msg, ok := he.Message.(string); ok && msg != "" {
			errorMessage = msg
		}

		switch code {
		case http.StatusNotFound:
			errorTitle = "Page Not Found"
			if errorMessage == "" {
				errorMessage = "The page you're looking for doesn't exist."
			}
		case http.StatusForbidden:
			errorTitle = "Access Denied"
			if errorMessage == "" {
				errorMessage = "You don't have permission to access this resource."
			}
		case http.StatusUnauthorized:
			errorTitle = "Unauthorized"
			if errorMessage == "" {
				errorMessage = "Please log in to continue."
			}
		case http.StatusBadRequest:
			errorTitle = "Bad Request"
			if errorMessage == "" {
				errorMessage = "The request could not be processed."
			}
		default:
			if errorMessage == "" {
				errorMessage = "Something went wrong. Please try again later."
			}
		}
	} else {
		errorMessage = "Something went wrong. Please try again later."
	}

	path := c.Request().URL.Path
	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "path", path, "status", code, "error", err)
	} else {
		slog.Debug("request rejected", "path", path, "status", code, "error", err)
	}

	if isAPIPath(path) {
		if jsonErr := c.JSON(code, map[string]string{"error": errorMessage}); jsonErr != nil {
			slog.Error("failed to write error response", "error", jsonErr)
		}
		return
	}

	userEmail, _ := c.Get("userEmail").(string)
	props := views.ErrorPageProps{
		PageProps: views.PageProps{
			Title:     errorTitle,
			UserEmail: userEmail,
			Path:      path,
			Breadcrumbs: []views.Breadcrumb{
				{Title: "Home", URL: "/"},
				{Title: "Error", URL: ""},
			},
		},
		ErrorTitle:   errorTitle,
		ErrorMessage: errorMessage,
		BackLink:     "/dashboard",
		BackText:     "Back to dashboard",
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)

	// error pages show the navigation placeholder only, the menu source may be what failed
	var renderErr error
	if isPublic(path) || userEmail == "" {
		renderErr = views.PublicErrorPage(props).Render(c.Request().Context(), c.Response())
	} else {
		renderErr = views.ErrorPage(props).Render(c.Request().Context(), c.Response())
	}
	if renderErr != nil {
		slog.Error("render error page", "error", fmt.Errorf("failed to render error page: %w", renderErr))
	}
}

func isPublic(path string) bool {
	for _, prefix := range []string{"/login", "/auth", "/static"} {
		if len(path) >= len(prefix) && path[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}
