package handlers

import (
	"github.com/labstack/echo/v4"

	"yi_connect_echo/internal/services"
	"yi_connect_echo/internal/views"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	nav *services.NavigationService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(nav *services.NavigationService) *DashboardHandler {
	return &DashboardHandler{nav: nav}
}

// Dashboard renders the dashboard page with the bottom navigation synced to its path
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	path := c.Request().URL.Path
	res, err := h.nav.View(c.Request().Context(), navUserFromContext(c), path)
	if err != nil {
		return navError(err)
	}

	// Breadcrumbs: Home > Dashboard
	breadcrumbs := []views.Breadcrumb{
		{Title: "Home", URL: "/"},
		{Title: "Dashboard", URL: ""}, // Current page
	}

	props := views.DashboardProps{
		PageProps: pageProps(c, "Dashboard", path, breadcrumbs, res.View),
	}
	if res.View.ActiveGroup != nil {
		props.Shortcuts = res.View.ActiveGroup.Items
	}

	return views.Dashboard(props).Render(c.Request().Context(), c.Response())
}
