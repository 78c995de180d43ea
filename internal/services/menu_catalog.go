package services

import (
	"yi_connect_echo/internal/models"
	"yi_connect_echo/internal/navigation"
)

// MenuDefinition is a menu group before role filtering
type MenuDefinition struct {
	Label   string            `json:"label"`
	Icon    string            `json:"icon"`
	Entries []EntryDefinition `json:"entries"`
}

// EntryDefinition is a menu entry before role filtering. Empty Roles means every role.
type EntryDefinition struct {
	Href     string            `json:"href"`
	Label    string            `json:"label"`
	Icon     string            `json:"icon"`
	Roles    []string          `json:"roles,omitempty"`
	Submenus []EntryDefinition `json:"submenus,omitempty"`
}

var leadership = []string{
	string(models.UserRoleChair),
	string(models.UserRoleCoChair),
	string(models.UserRoleECMember),
}

var admins = []string{
	string(models.UserRoleChapterAdmin),
	string(models.UserRoleNationalAdmin),
	string(models.UserRoleSuperAdmin),
}

var nationalAdmins = []string{
	string(models.UserRoleNationalAdmin),
	string(models.UserRoleSuperAdmin),
}

// DefaultIcons maps group labels to the icon of their primary button
func DefaultIcons() navigation.IconMap {
	return navigation.IconMap{
		"Main":           "layout-dashboard",
		"Members":        "users",
		"Events":         "calendar",
		"Finance":        "wallet",
		"Stakeholders":   "handshake",
		"Communications": "megaphone",
		"Opportunities":  "briefcase",
		"Succession":     "award",
		"Knowledge Base": "book-open",
		"Settings":       "settings",
	}
}

// DefaultMenus is the built-in menu catalog, used when no database is configured
// and as seed data for an empty menu table.
func DefaultMenus(variant navigation.Variant) []MenuDefinition {
	if variant == navigation.VariantAdmin {
		return adminMenus()
	}
	return memberMenus()
}

func memberMenus() []MenuDefinition {
	return []MenuDefinition{
		{Label: "Main", Icon: "home", Entries: []EntryDefinition{
			{Href: "/", Label: "Dashboard", Icon: "home"},
			{Href: "/profile", Label: "My Profile", Icon: "user"},
		}},
		{Label: "Events", Icon: "calendar", Entries: []EntryDefinition{
			{Href: "/events", Label: "Events", Icon: "calendar", Submenus: []EntryDefinition{
				{Href: "/events", Label: "All Events", Icon: "list"},
				{Href: "/events/my", Label: "My Registrations", Icon: "ticket"},
				{Href: "/events/service", Label: "Service Programs", Icon: "heart"},
			}},
			{Href: "/events/new", Label: "Create Event", Icon: "plus", Roles: leadership},
		}},
		{Label: "Opportunities", Icon: "briefcase", Entries: []EntryDefinition{
			{Href: "/opportunities", Label: "Industry Opportunities", Icon: "briefcase"},
			{Href: "/opportunities/internships", Label: "Internships", Icon: "graduation-cap"},
		}},
		{Label: "Communications", Icon: "megaphone", Entries: []EntryDefinition{
			{Href: "/communications/announcements", Label: "Announcements", Icon: "megaphone"},
			{Href: "/communications/segments", Label: "Segments", Icon: "filter", Roles: leadership},
			{Href: "/communications/templates", Label: "Templates", Icon: "file-text", Roles: leadership},
		}},
		{Label: "Finance", Icon: "wallet", Entries: []EntryDefinition{
			{Href: "/finance/reimbursements", Label: "Reimbursements", Icon: "receipt"},
			{Href: "/finance/budgets", Label: "Budgets", Icon: "pie-chart", Roles: leadership},
		}},
		{Label: "Succession", Icon: "award", Entries: []EntryDefinition{
			{Href: "/succession/nominations", Label: "Nominations", Icon: "award"},
			{Href: "/succession/evaluations", Label: "Evaluations", Icon: "clipboard-check", Roles: leadership},
		}},
		{Label: "Knowledge Base", Icon: "book-open", Entries: []EntryDefinition{
			{Href: "/knowledge", Label: "Articles", Icon: "book-open"},
		}},
	}
}

func adminMenus() []MenuDefinition {
	return []MenuDefinition{
		{Label: "Main", Icon: "home", Entries: []EntryDefinition{
			{Href: "/admin", Label: "Admin Dashboard", Icon: "home"},
			{Href: "/", Label: "Member View", Icon: "eye"},
		}},
		{Label: "Members", Icon: "users", Entries: []EntryDefinition{
			{Href: "/members", Label: "Members", Icon: "users", Submenus: []EntryDefinition{
				{Href: "/members", Label: "Directory", Icon: "list"},
				{Href: "/members/new", Label: "Add Member", Icon: "user-plus"},
				{Href: "/members/import", Label: "Import", Icon: "upload"},
			}},
			{Href: "/admin/chapters", Label: "Chapters", Icon: "map", Roles: nationalAdmins},
		}},
		{Label: "Events", Icon: "calendar", Entries: []EntryDefinition{
			{Href: "/events", Label: "Events", Icon: "calendar", Submenus: []EntryDefinition{
				{Href: "/events/new", Label: "Create Event", Icon: "plus"},
				{Href: "/events/venues", Label: "Venue Booking", Icon: "building"},
				{Href: "/events/materials", Label: "Materials", Icon: "package"},
			}},
		}},
		{Label: "Finance", Icon: "wallet", Entries: []EntryDefinition{
			{Href: "/finance", Label: "Finance", Icon: "wallet", Submenus: []EntryDefinition{
				{Href: "/finance", Label: "Overview", Icon: "bar-chart"},
				{Href: "/finance/budgets", Label: "Budgets", Icon: "pie-chart"},
				{Href: "/finance/expenses", Label: "Expenses", Icon: "credit-card"},
				{Href: "/finance/reimbursements", Label: "Reimbursements", Icon: "receipt"},
				{Href: "/finance/sponsorships", Label: "Sponsorships", Icon: "gift"},
			}},
			{Href: "/finance/categories", Label: "Categories", Icon: "tags", Submenus: []EntryDefinition{
				{Href: "/finance/categories/income", Label: "Income Categories", Icon: "trending-up"},
				{Href: "/finance/categories/expense", Label: "Expense Categories", Icon: "trending-down"},
			}},
		}},
		{Label: "Stakeholders", Icon: "handshake", Entries: []EntryDefinition{
			{Href: "/stakeholders/government", Label: "Government", Icon: "landmark"},
			{Href: "/stakeholders/industry", Label: "Industry", Icon: "factory"},
		}},
		{Label: "Communications", Icon: "megaphone", Entries: []EntryDefinition{
			{Href: "/communications/announcements", Label: "Announcements", Icon: "megaphone"},
			{Href: "/communications/segments", Label: "Segments", Icon: "filter"},
			{Href: "/communications/templates", Label: "Templates", Icon: "file-text"},
		}},
		{Label: "Succession", Icon: "award", Entries: []EntryDefinition{
			{Href: "/succession/cycles", Label: "Cycles", Icon: "refresh-cw"},
			{Href: "/succession/evaluations", Label: "Evaluations", Icon: "clipboard-check"},
		}},
		{Label: "Knowledge Base", Icon: "book-open", Entries: []EntryDefinition{
			{Href: "/knowledge", Label: "Articles", Icon: "book-open"},
			{Href: "/knowledge/new", Label: "New Article", Icon: "plus"},
		}},
		{Label: "Settings", Icon: "settings", Entries: []EntryDefinition{
			{Href: "/admin/settings", Label: "Settings", Icon: "settings", Roles: admins, Submenus: []EntryDefinition{
				{Href: "/admin/settings/roles", Label: "Roles", Icon: "shield", Roles: nationalAdmins},
				{Href: "/admin/settings/chapter", Label: "Chapter Profile", Icon: "home"},
			}},
		}},
	}
}

// FilterForRole drops the entries role may not see and converts the rest into raw menu groups.
// A hidden parent hides its sub-entries as well.
func FilterForRole(defs []MenuDefinition, role models.UserRole) []navigation.RawGroup {
	groups := make([]navigation.RawGroup, 0, len(defs))
	for _, d := range defs {
		groups = append(groups, navigation.RawGroup{
			GroupLabel: d.Label,
			Icon:       navigation.IconRef(d.Icon),
			Menus:      filterEntries(d.Entries, role),
		})
	}
	return groups
}

func filterEntries(entries []EntryDefinition, role models.UserRole) []navigation.RawEntry {
	out := make([]navigation.RawEntry, 0, len(entries))
	for _, e := range entries {
		if !(models.MenuEntry{Roles: e.Roles}).VisibleTo(role) {
			continue
		}
		out = append(out, navigation.RawEntry{
			Href:     e.Href,
			Label:    e.Label,
			Icon:     navigation.IconRef(e.Icon),
			Submenus: filterEntries(e.Submenus, role),
		})
	}
	return out
}
