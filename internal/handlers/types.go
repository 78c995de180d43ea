package handlers

import (
	"github.com/labstack/echo/v4"

	"yi_connect_echo/internal/models"
	"yi_connect_echo/internal/navigation"
	"yi_connect_echo/internal/services"
	"yi_connect_echo/internal/views"
)

// Context keys set by middleware.RequireAuth
const (
	ContextUserUID   = "userUID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// Helper to safely get string from context
func getStringFromContext(c echo.Context, key string) string {
	val := c.Get(key)
	if val == nil {
		return ""
	}
	strVal, ok := val.(string)
	if !ok {
		return ""
	}
	return strVal
}

func getRoleFromContext(c echo.Context) models.UserRole {
	if role, ok := c.Get(ContextUserRole).(models.UserRole); ok {
		return role
	}
	return models.ParseUserRole(getStringFromContext(c, ContextUserRole))
}

// navUserFromContext identifies the signed-in user for navigation state
func navUserFromContext(c echo.Context) services.NavUser {
	return services.NavUser{
		UserID: getStringFromContext(c, ContextUserUID),
		Role:   getRoleFromContext(c),
	}
}

func pageProps(c echo.Context, title, path string, crumbs []views.Breadcrumb, nav navigation.View) views.PageProps {
	return views.PageProps{
		Title:       title,
		Breadcrumbs: crumbs,
		UserEmail:   getStringFromContext(c, ContextUserEmail),
		UserRole:    string(getRoleFromContext(c)),
		Path:        path,
		Nav:         nav,
	}
}
