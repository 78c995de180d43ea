package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"yi_connect_echo/internal/models"
	"yi_connect_echo/internal/navigation"
	"yi_connect_echo/internal/services"
)

func TestDashboardRendersNavigation(t *testing.T) {
	menus := staticMenus{
		{GroupLabel: "Main", Menus: []navigation.RawEntry{{Href: "/", Label: "Dashboard"}, {Href: "/profile", Label: "Profile"}}},
		{GroupLabel: "Events", Menus: []navigation.RawEntry{{Href: "/events", Label: "Events"}}},
	}
	nav := services.NewNavigationService(menus, navigation.NewMemoryRepository(), 4, nil)
	h := NewDashboardHandler(nav)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec)
	c.Set(ContextUserUID, "u1")
	c.Set(ContextUserEmail, "member@yi.org")
	c.Set(ContextUserRole, models.UserRoleMember)

	if err := h.Dashboard(c); err != nil {
		t.Fatal(err)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"member@yi.org",
		`href="/profile"`,
		`hx-post="/nav/groups/main/tap"`,
		`<button type="button" class="bottom-nav__item is-active"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}
