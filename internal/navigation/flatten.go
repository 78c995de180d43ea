package navigation

// FlattenOptions controls how raw hrefs collapse into navigable items
type FlattenOptions struct {
	// Redirects maps a raw href to its canonical href. Applied once, not transitively.
	Redirects map[string]string
	// ParentOnly lists hrefs that only group sub-entries and are never navigable themselves.
	ParentOnly []string
}

// MemberFlattenOptions is used by the member-facing shell
func MemberFlattenOptions() FlattenOptions {
	return FlattenOptions{
		Redirects: map[string]string{
			"/": "/dashboard",
		},
	}
}

// AdminFlattenOptions is used by the admin-facing shell
func AdminFlattenOptions() FlattenOptions {
	return FlattenOptions{
		Redirects: map[string]string{
			"/":      "/dashboard",
			"/admin": "/admin/dashboard",
		},
		ParentOnly: []string{
			"/finance/categories",
			"/billing/categories",
			"/admin/settings",
		},
	}
}

// OptionsFor returns the flatten options of a shell variant
func OptionsFor(v Variant) FlattenOptions {
	if v == VariantAdmin {
		return AdminFlattenOptions()
	}
	return MemberFlattenOptions()
}

func (o FlattenOptions) canonical(href string) string {
	if mapped, ok := o.Redirects[href]; ok {
		return mapped
	}
	return href
}

func (o FlattenOptions) isParentOnly(href string) bool {
	for _, p := range o.ParentOnly {
		if p == href {
			return true
		}
	}
	return false
}

// Flatten turns a two-level menu into an ordered list of unique navigable items.
// Hrefs are compared after redirect mapping and the first occurrence wins.
func Flatten(entries []RawEntry, opts FlattenOptions) []MenuItem {
	seen := make(map[string]struct{})
	items := make([]MenuItem, 0, len(entries))

	emit := func(href string, e RawEntry, parentLabel string) {
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		items = append(items, MenuItem{
			Href:        href,
			Label:       e.Label,
			Icon:        e.Icon,
			ParentLabel: parentLabel,
		})
	}

	for _, e := range entries {
		href := opts.canonical(e.Href)

		if len(e.Submenus) == 0 {
			emit(href, e, "")
			continue
		}

		if !opts.isParentOnly(href) && !childHasHref(e.Submenus, href, opts) {
			emit(href, e, "")
		}

		for _, sub := range e.Submenus {
			emit(opts.canonical(sub.Href), sub, e.Label)
		}
	}

	return items
}

func childHasHref(children []RawEntry, href string, opts FlattenOptions) bool {
	for _, c := range children {
		if opts.canonical(c.Href) == href {
			return true
		}
	}
	return false
}
