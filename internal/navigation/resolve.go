package navigation

import "strings"

// Match is the result of resolving the current path against the groups
type Match struct {
	Group *NavGroup
	Item  *MenuItem
	// Found is false when Group is only the first-group fallback
	Found bool
}

// ItemMatches reports whether path is href itself or one of its descendants
func ItemMatches(path, href string) bool {
	if href == "" {
		return false
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

// Resolve finds the first group and item matching path.
// Groups are scanned in declared order and the first hit wins, so an earlier
// group's "/x" shadows a later group's "/x/y" for the path "/x/y".
func Resolve(path string, groups []NavGroup) Match {
	for gi := range groups {
		g := &groups[gi]
		for ii := range g.Items {
			if ItemMatches(path, g.Items[ii].Href) {
				return Match{Group: g, Item: &g.Items[ii], Found: true}
			}
		}
	}

	if len(groups) == 0 {
		return Match{}
	}
	return Match{Group: &groups[0]}
}

// MarkActive returns a copy of groups with IsActive set on every item matching path
func MarkActive(groups []NavGroup, path string) []NavGroup {
	out := make([]NavGroup, len(groups))
	for gi, g := range groups {
		items := make([]MenuItem, len(g.Items))
		for ii, it := range g.Items {
			it.IsActive = ItemMatches(path, it.Href)
			items[ii] = it
		}
		g.Items = items
		out[gi] = g
	}
	return out
}
