package navigation

import (
	"strings"
	"unicode"
)

// IconRef is a symbolic icon identifier resolved by the presentation layer
type IconRef string

// Variant selects which navigation shell a menu belongs to
type Variant string

const (
	VariantMember Variant = "member"
	VariantAdmin  Variant = "admin"
)

// RawEntry is a menu entry as supplied by the menu source
type RawEntry struct {
	Href     string     `json:"href"`
	Label    string     `json:"label"`
	Icon     IconRef    `json:"icon"`
	Active   bool       `json:"active"`
	Submenus []RawEntry `json:"submenus,omitempty"`
}

// RawGroup is a top-level menu category with its entries, pre-filtered by role
type RawGroup struct {
	GroupLabel string     `json:"groupLabel"`
	Icon       IconRef    `json:"icon"`
	Menus      []RawEntry `json:"menus"`
}

// MenuItem is a single navigable entry after flattening
type MenuItem struct {
	Href        string  `json:"href"`
	Label       string  `json:"label"`
	Icon        IconRef `json:"icon"`
	ParentLabel string  `json:"parentLabel,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// NavGroup is a flattened group of navigable items
type NavGroup struct {
	ID         string     `json:"id"`
	GroupLabel string     `json:"groupLabel"`
	Icon       IconRef    `json:"icon"`
	Items      []MenuItem `json:"items"`
}

// IconMap maps a group label to the icon shown on its primary button
type IconMap map[string]IconRef

// Slugify derives the stable group id from its label.
// "Stakeholder  CRM" -> "stakeholder-crm"
func Slugify(label string) string {
	fields := strings.FieldsFunc(strings.ToLower(label), unicode.IsSpace)
	return strings.Join(fields, "-")
}

// BuildGroups flattens every raw group and drops the ones left without items
func BuildGroups(raw []RawGroup, opts FlattenOptions, icons IconMap) []NavGroup {
	groups := make([]NavGroup, 0, len(raw))
	for _, rg := range raw {
		items := Flatten(rg.Menus, opts)
		if len(items) == 0 {
			continue
		}

		icon := rg.Icon
		if mapped, ok := icons[rg.GroupLabel]; ok {
			icon = mapped
		}

		groups = append(groups, NavGroup{
			ID:         Slugify(rg.GroupLabel),
			GroupLabel: rg.GroupLabel,
			Icon:       icon,
			Items:      items,
		})
	}
	return groups
}

// FindGroup returns the group with the given id
func FindGroup(groups []NavGroup, id string) (*NavGroup, bool) {
	for i := range groups {
		if groups[i].ID == id {
			return &groups[i], true
		}
	}
	return nil, false
}
