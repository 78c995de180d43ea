package navigation

import (
	"reflect"
	"testing"
)

func hrefs(items []MenuItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Href)
	}
	return out
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name     string
		entries  []RawEntry
		opts     FlattenOptions
		expected []string
	}{
		{
			name: "leaf entries keep order",
			entries: []RawEntry{
				{Href: "/members", Label: "Members"},
				{Href: "/events", Label: "Events"},
			},
			expected: []string{"/members", "/events"},
		},
		{
			name: "duplicate hrefs collapse to first",
			entries: []RawEntry{
				{Href: "/members", Label: "Members"},
				{Href: "/members", Label: "Members Again"},
			},
			expected: []string{"/members"},
		},
		{
			name: "redirect collapses root onto dashboard",
			entries: []RawEntry{
				{Href: "/", Label: "Home"},
				{Href: "/dashboard", Label: "Dashboard"},
			},
			opts:     FlattenOptions{Redirects: map[string]string{"/": "/dashboard"}},
			expected: []string{"/dashboard"},
		},
		{
			name: "parent emitted before its children",
			entries: []RawEntry{
				{Href: "/events", Label: "Events", Submenus: []RawEntry{
					{Href: "/events/new", Label: "New Event"},
					{Href: "/events/venues", Label: "Venues"},
				}},
			},
			expected: []string{"/events", "/events/new", "/events/venues"},
		},
		{
			name: "parent skipped when a child shares its href",
			entries: []RawEntry{
				{Href: "/finance", Label: "Finance", Submenus: []RawEntry{
					{Href: "/finance", Label: "Overview"},
					{Href: "/finance/budgets", Label: "Budgets"},
				}},
			},
			expected: []string{"/finance", "/finance/budgets"},
		},
		{
			name: "parent skipped when a child redirects onto it",
			entries: []RawEntry{
				{Href: "/dashboard", Label: "Home", Submenus: []RawEntry{
					{Href: "/", Label: "Overview"},
				}},
			},
			opts:     FlattenOptions{Redirects: map[string]string{"/": "/dashboard"}},
			expected: []string{"/dashboard"},
		},
		{
			name: "parent-only href never emitted",
			entries: []RawEntry{
				{Href: "/billing/categories", Label: "Categories", Submenus: []RawEntry{
					{Href: "/billing/categories/income", Label: "Income"},
					{Href: "/billing/categories/expense", Label: "Expense"},
				}},
			},
			opts:     FlattenOptions{ParentOnly: []string{"/billing/categories"}},
			expected: []string{"/billing/categories/income", "/billing/categories/expense"},
		},
		{
			name: "sibling child already seen is dropped",
			entries: []RawEntry{
				{Href: "/events/venues", Label: "Venues"},
				{Href: "/events", Label: "Events", Submenus: []RawEntry{
					{Href: "/events/venues", Label: "Venue Booking"},
					{Href: "/events/materials", Label: "Materials"},
				}},
			},
			expected: []string{"/events/venues", "/events", "/events/materials"},
		},
		{
			name:     "empty input",
			entries:  nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := hrefs(Flatten(tt.entries, tt.opts))
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Flatten() hrefs = %v; want %v", result, tt.expected)
			}
		})
	}
}

func TestFlattenKeepsFirstLabelAndIcon(t *testing.T) {
	entries := []RawEntry{
		{Href: "/", Label: "Home", Icon: "home"},
		{Href: "/dashboard", Label: "Dashboard", Icon: "layout"},
	}
	items := Flatten(entries, MemberFlattenOptions())

	if len(items) != 1 {
		t.Fatalf("got %d items; want 1", len(items))
	}
	if items[0].Href != "/dashboard" || items[0].Label != "Home" || items[0].Icon != "home" {
		t.Errorf("got %+v; want first-seen label/icon with redirected href", items[0])
	}
}

func TestFlattenTagsParentLabel(t *testing.T) {
	entries := []RawEntry{
		{Href: "/stakeholders", Label: "Stakeholders", Submenus: []RawEntry{
			{Href: "/stakeholders/government", Label: "Government"},
		}},
	}
	items := Flatten(entries, FlattenOptions{})

	if items[0].ParentLabel != "" {
		t.Errorf("parent item ParentLabel = %q; want empty", items[0].ParentLabel)
	}
	if items[1].ParentLabel != "Stakeholders" {
		t.Errorf("child ParentLabel = %q; want %q", items[1].ParentLabel, "Stakeholders")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Finance", "finance"},
		{"Stakeholder CRM", "stakeholder-crm"},
		{"  Knowledge   Base ", "knowledge-base"},
		{"Succession\tPlanning", "succession-planning"},
		{"EVENTS", "events"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := Slugify(tt.input); result != tt.expected {
				t.Errorf("Slugify(%q) = %q; want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestBuildGroups(t *testing.T) {
	raw := []RawGroup{
		{GroupLabel: "Main", Icon: "grid", Menus: []RawEntry{{Href: "/", Label: "Dashboard"}}},
		{GroupLabel: "Empty Group", Icon: "x"},
		{GroupLabel: "Parent Only", Menus: []RawEntry{
			{Href: "/billing/categories", Label: "Categories", Submenus: []RawEntry{}},
		}},
		{GroupLabel: "Events", Icon: "calendar", Menus: []RawEntry{{Href: "/events", Label: "Events"}}},
	}
	opts := FlattenOptions{
		Redirects:  map[string]string{"/": "/dashboard"},
		ParentOnly: []string{"/billing/categories"},
	}
	icons := IconMap{"Events": "calendar-days"}

	groups := BuildGroups(raw, opts, icons)

	// "Parent Only" has no sub-entries, so its entry is treated as a leaf and kept
	ids := []string{}
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	if want := []string{"main", "parent-only", "events"}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("group ids = %v; want %v", ids, want)
	}
	if groups[0].Icon != "grid" {
		t.Errorf("Main icon = %q; want raw icon %q", groups[0].Icon, "grid")
	}
	if groups[2].Icon != "calendar-days" {
		t.Errorf("Events icon = %q; want mapped icon %q", groups[2].Icon, "calendar-days")
	}
}
