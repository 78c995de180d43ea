package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"yi_connect_echo/internal/navigation"
	"yi_connect_echo/internal/services"
	"yi_connect_echo/internal/views"
)

// NavHandler exposes the bottom navigation transitions.
// htmx requests get the re-rendered fragment, everything else gets JSON.
type NavHandler struct {
	nav *services.NavigationService
}

// NewNavHandler creates a new NavHandler
func NewNavHandler(nav *services.NavigationService) *NavHandler {
	return &NavHandler{nav: nav}
}

type navResponse struct {
	Push string          `json:"push,omitempty"`
	View navigation.View `json:"view"`
}

// Register mounts the navigation routes on g
func (h *NavHandler) Register(g *echo.Group) {
	g.GET("", h.View)
	g.GET("/fragment", h.Fragment)
	g.POST("/groups/:id/tap", h.TapGroup)
	g.POST("/more/toggle", h.ToggleMore)
	g.POST("/more/close", h.CloseMore)
	g.POST("/entries/tap", h.TapEntry)
	g.POST("/outside", h.ClickOutside)
	g.POST("/reset", h.Reset)
}

// View returns the navigation view for the current path
func (h *NavHandler) View(c echo.Context) error {
	path := requestPath(c)
	res, err := h.nav.View(c.Request().Context(), navUserFromContext(c), path)
	if err != nil {
		return navError(err)
	}
	return h.respond(c, path, res)
}

// Fragment renders the navigation HTML fragment for the current path
func (h *NavHandler) Fragment(c echo.Context) error {
	path := requestPath(c)
	res, err := h.nav.View(c.Request().Context(), navUserFromContext(c), path)
	if err != nil {
		return navError(err)
	}
	return renderFragment(c, path, res)
}

// TapGroup handles a tap on a primary group button
func (h *NavHandler) TapGroup(c echo.Context) error {
	path := requestPath(c)
	res, err := h.nav.TapPrimary(c.Request().Context(), navUserFromContext(c), path, c.Param("id"))
	if err != nil {
		return navError(err)
	}
	return h.respond(c, path, res)
}

// ToggleMore handles a tap on the More button
func (h *NavHandler) ToggleMore(c echo.Context) error {
	path := requestPath(c)
	res, err := h.nav.ToggleMore(c.Request().Context(), navUserFromContext(c), path)
	if err != nil {
		return navError(err)
	}
	return h.respond(c, path, res)
}

// CloseMore handles the overflow backdrop and close button
func (h *NavHandler) CloseMore(c echo.Context) error {
	path := requestPath(c)
	res, err := h.nav.CloseOverflow(c.Request().Context(), navUserFromContext(c), path)
	if err != nil {
		return navError(err)
	}
	return h.respond(c, path, res)
}

// TapEntry handles a tap on a submenu or overflow entry
func (h *NavHandler) TapEntry(c echo.Context) error {
	path := requestPath(c)
	href := c.FormValue("href")
	if href == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "href is required")
	}

	source := services.EntrySource(c.FormValue("source"))
	switch source {
	case "":
		source = services.EntrySourceSubmenu
	case services.EntrySourceSubmenu, services.EntrySourceOverflow:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "source must be submenu or overflow")
	}

	res, err := h.nav.TapEntry(c.Request().Context(), navUserFromContext(c), path, source, href)
	if err != nil {
		return navError(err)
	}
	if res.Effect.Push != "" {
		c.Response().Header().Set("HX-Location", res.Effect.Push)
		path = res.Effect.Push
	}
	return h.respond(c, path, res)
}

// ClickOutside handles a click outside the navigation region
func (h *NavHandler) ClickOutside(c echo.Context) error {
	path := requestPath(c)
	res, err := h.nav.ClickOutside(c.Request().Context(), navUserFromContext(c), path)
	if err != nil {
		return navError(err)
	}
	return h.respond(c, path, res)
}

// Reset clears the user's navigation state
func (h *NavHandler) Reset(c echo.Context) error {
	if err := h.nav.Reset(c.Request().Context(), navUserFromContext(c)); err != nil {
		return navError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NavHandler) respond(c echo.Context, path string, res services.NavResult) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		return renderFragment(c, path, res)
	}
	return c.JSON(http.StatusOK, navResponse{Push: res.Effect.Push, View: res.View})
}

func renderFragment(c echo.Context, path string, res services.NavResult) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return views.BottomNav(res.View, path).Render(c.Request().Context(), c.Response())
}

// requestPath reads the current route path from the query or form, defaulting to "/"
func requestPath(c echo.Context) string {
	path := c.QueryParam("path")
	if path == "" {
		path = c.FormValue("path")
	}
	if path == "" {
		return "/"
	}
	return path
}

func navError(err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownGroup), errors.Is(err, services.ErrUnknownEntry):
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "navigation unavailable").SetInternal(err)
	}
}
