package navigation

// DefaultPrimarySize is the number of groups shown directly in the bar
const DefaultPrimarySize = 4

// View is everything the presentation shell needs to render the navigation
type View struct {
	Hydrated         bool       `json:"hydrated"`
	Mode             Mode       `json:"mode"`
	Primary          []NavGroup `json:"primary"`
	Overflow         []NavGroup `json:"overflow"`
	OverflowCount    int        `json:"overflowCount"`
	EffectiveGroupID string     `json:"effectiveGroupId,omitempty"`
	ActiveGroup      *NavGroup  `json:"activeGroup,omitempty"`
	ActiveItem       *MenuItem  `json:"activeItem,omitempty"`
	IsExpanded       bool       `json:"isExpanded"`
	IsMoreMenuOpen   bool       `json:"isMoreMenuOpen"`
}

// SplitGroups separates the primary slice from the overflow groups
func SplitGroups(groups []NavGroup, primarySize int) (primary, overflow []NavGroup) {
	if primarySize <= 0 {
		primarySize = DefaultPrimarySize
	}
	if len(groups) <= primarySize {
		return groups, nil
	}
	return groups[:primarySize], groups[primarySize:]
}

// BuildView derives the render model for the current path and state.
// A view of a store that is not hydrated yet carries no groups.
func BuildView(groups []NavGroup, path string, state State, primarySize int, hydrated bool) View {
	if !hydrated {
		return View{Mode: ModeCollapsed}
	}

	state = withoutStaleGroup(state, groups)
	marked := MarkActive(groups, path)
	match := Resolve(path, marked)
	primary, overflow := SplitGroups(marked, primarySize)

	v := View{
		Hydrated:         true,
		Mode:             ModeOf(state),
		Primary:          primary,
		Overflow:         overflow,
		OverflowCount:    len(overflow),
		EffectiveGroupID: EffectiveActiveGroup(state, match),
		IsExpanded:       state.IsExpanded,
		IsMoreMenuOpen:   state.IsMoreMenuOpen,
	}
	// with nothing stored and no path match, the first group is shown rather than none
	if v.EffectiveGroupID == "" && match.Group != nil {
		v.EffectiveGroupID = match.Group.ID
	}
	if g, ok := FindGroup(marked, v.EffectiveGroupID); ok {
		v.ActiveGroup = g
	}
	if match.Found {
		v.ActiveItem = match.Item
	}
	return v
}
