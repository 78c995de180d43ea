package views

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"regexp"
	"strings"
	"testing"

	"yi_connect_echo/internal/navigation"
)

func render(t *testing.T, v navigation.View, path string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := BottomNav(v, path).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func testGroups() []navigation.NavGroup {
	mk := func(label, href string) navigation.NavGroup {
		return navigation.NavGroup{
			ID:         navigation.Slugify(label),
			GroupLabel: label,
			Items:      []navigation.MenuItem{{Href: href, Label: label}},
		}
	}
	return []navigation.NavGroup{
		mk("Main", "/dashboard"),
		mk("Events", "/events"),
		mk("Finance", "/finance"),
		mk("Stakeholders", "/stakeholders"),
		mk("Communications", "/communications"),
		mk("Knowledge Base", "/knowledge"),
	}
}

func TestBottomNavPlaceholderBeforeHydration(t *testing.T) {
	html := render(t, navigation.View{}, "/")

	if !strings.Contains(html, `aria-busy="true"`) || strings.Contains(html, "bottom-nav__item") {
		t.Errorf("placeholder markup = %s", html)
	}
}

func TestBottomNavStates(t *testing.T) {
	groups := testGroups()

	tests := []struct {
		name     string
		state    navigation.State
		contains []string
		absent   []string
	}{
		{
			name:     "collapsed shows bar and badge",
			state:    navigation.State{},
			contains: []string{`hx-post="/nav/groups/events/tap"`, `<span class="badge">2</span>`},
			absent:   []string{"bottom-nav__submenu", "bottom-nav__sheet"},
		},
		{
			name:     "submenu open",
			state:    navigation.State{ActiveGroupID: "finance", IsExpanded: true},
			contains: []string{"bottom-nav__submenu", `&#34;source&#34;:&#34;submenu&#34;`, `aria-expanded="true"`},
			absent:   []string{"bottom-nav__sheet"},
		},
		{
			name:     "overflow open",
			state:    navigation.State{ActiveGroupID: "main", IsMoreMenuOpen: true},
			contains: []string{"bottom-nav__sheet", "Knowledge Base", `&#34;source&#34;:&#34;overflow&#34;`},
			absent:   []string{"bottom-nav__submenu"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := navigation.BuildView(groups, "/dashboard", tt.state, 4, true)
			html := render(t, v, "/dashboard")
			for _, s := range tt.contains {
				if !strings.Contains(html, s) {
					t.Errorf("markup missing %q", s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(html, s) {
					t.Errorf("markup unexpectedly contains %q", s)
				}
			}
		})
	}
}

func TestBottomNavEscapesLabels(t *testing.T) {
	groups := []navigation.NavGroup{{
		ID:         "main",
		GroupLabel: `<script>alert(1)</script>`,
		Items:      []navigation.MenuItem{{Href: "/dashboard", Label: "x"}},
	}}
	html := render(t, navigation.BuildView(groups, "/", navigation.State{}, 4, true), "/")

	if strings.Contains(html, "<script>") {
		t.Errorf("label not escaped: %s", html)
	}
}

func TestDashboardIncludesNavigation(t *testing.T) {
	v := navigation.BuildView(testGroups(), "/dashboard", navigation.State{}, 4, true)
	props := DashboardProps{
		PageProps: PageProps{
			Title:       "Dashboard",
			Breadcrumbs: []Breadcrumb{{Title: "Home", URL: "/"}, {Title: "Dashboard"}},
			Path:        "/dashboard",
			Nav:         v,
		},
		Shortcuts: testGroups()[1].Items,
	}

	var buf bytes.Buffer
	if err := Dashboard(props).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	for _, s := range []string{`<h1>Dashboard</h1>`, `href="/events"`, `id="bottom-nav"`, `aria-current="page"`} {
		if !strings.Contains(html, s) {
			t.Errorf("dashboard missing %q", s)
		}
	}
}

var hxVals = regexp.MustCompile(`hx-vals="([^"]*)"`)

func TestEntryValsSurviveQuotedHref(t *testing.T) {
	href := `/knowledge?tag="go"&lang=<en>`
	groups := []navigation.NavGroup{{
		ID:         "knowledge-base",
		GroupLabel: "Knowledge Base",
		Items:      []navigation.MenuItem{{Href: href, Label: "Go"}},
	}}
	v := navigation.BuildView(groups, "/", navigation.State{ActiveGroupID: "knowledge-base", IsExpanded: true}, 4, true)
	out := render(t, v, "/")

	m := hxVals.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no hx-vals attribute in %s", out)
	}
	var vals map[string]string
	if err := json.Unmarshal([]byte(html.UnescapeString(m[1])), &vals); err != nil {
		t.Fatalf("hx-vals is not valid JSON after attribute decoding: %v (%s)", err, m[1])
	}
	if vals["href"] != href || vals["source"] != "submenu" {
		t.Errorf("hx-vals = %v; want href %q from submenu", vals, href)
	}
}
