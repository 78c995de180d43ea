package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"yi_connect_echo/internal/metric"
	"yi_connect_echo/internal/models"
	"yi_connect_echo/internal/navigation"
)

var (
	ErrUnknownGroup = errors.New("unknown navigation group")
	ErrUnknownEntry = errors.New("unknown navigation entry")
)

// EntrySource tells where a navigation entry was tapped
type EntrySource string

const (
	EntrySourceSubmenu  EntrySource = "submenu"
	EntrySourceOverflow EntrySource = "overflow"
)

// MenuProvider supplies role-filtered raw menus
type MenuProvider interface {
	Groups(ctx context.Context, variant navigation.Variant, role models.UserRole) ([]navigation.RawGroup, error)
}

// NavUser identifies whose navigation state is being handled
type NavUser struct {
	UserID string
	Role   models.UserRole
}

// Variant returns the navigation shell of the user's role
func (u NavUser) Variant() navigation.Variant {
	if u.Role.IsAdmin() {
		return navigation.VariantAdmin
	}
	return navigation.VariantMember
}

// NavResult is the outcome of one navigation request
type NavResult struct {
	View   navigation.View   `json:"view"`
	Effect navigation.Effect `json:"effect"`
}

// NavigationService runs navigation transitions for a user: it loads the menu,
// rehydrates the stored state, syncs it to the path, applies the transition,
// writes the state back and builds the view.
type NavigationService struct {
	menus       MenuProvider
	repo        navigation.Repository
	icons       navigation.IconMap
	primarySize int
	transitions metric.Counter
	locks       keyedMutex
}

// NewNavigationService wires a navigation service. transitions may be nil.
func NewNavigationService(menus MenuProvider, repo navigation.Repository, primarySize int, transitions metric.Counter) *NavigationService {
	if transitions == nil {
		transitions = metric.Noop{}
	}
	return &NavigationService{
		menus:       menus,
		repo:        repo,
		icons:       DefaultIcons(),
		primarySize: primarySize,
		transitions: transitions,
		locks:       keyedMutex{locks: make(map[string]*keyedLock)},
	}
}

// View syncs the stored state to path and returns the view
func (s *NavigationService) View(ctx context.Context, u NavUser, path string) (NavResult, error) {
	return s.run(ctx, u, path, "view", nil)
}

// TapPrimary handles a tap on a group's primary button
func (s *NavigationService) TapPrimary(ctx context.Context, u NavUser, path, groupID string) (NavResult, error) {
	return s.run(ctx, u, path, "tap_primary", func(c *navigation.Controller, groups []navigation.NavGroup) (navigation.Effect, error) {
		if _, ok := navigation.FindGroup(groups, groupID); !ok {
			return navigation.Effect{}, fmt.Errorf("%w: %s", ErrUnknownGroup, groupID)
		}
		c.TapPrimary(groupID)
		return navigation.Effect{}, nil
	})
}

// ToggleMore handles a tap on the More button
func (s *NavigationService) ToggleMore(ctx context.Context, u NavUser, path string) (NavResult, error) {
	return s.run(ctx, u, path, "toggle_more", func(c *navigation.Controller, _ []navigation.NavGroup) (navigation.Effect, error) {
		c.TapMore()
		return navigation.Effect{}, nil
	})
}

// CloseOverflow handles the overflow backdrop and close button
func (s *NavigationService) CloseOverflow(ctx context.Context, u NavUser, path string) (NavResult, error) {
	return s.run(ctx, u, path, "close_overflow", func(c *navigation.Controller, _ []navigation.NavGroup) (navigation.Effect, error) {
		c.CloseOverflow()
		return navigation.Effect{}, nil
	})
}

// TapEntry handles a tap on a submenu or overflow entry and returns the navigation effect
func (s *NavigationService) TapEntry(ctx context.Context, u NavUser, path string, source EntrySource, href string) (NavResult, error) {
	return s.run(ctx, u, path, "tap_"+string(source), func(c *navigation.Controller, groups []navigation.NavGroup) (navigation.Effect, error) {
		if !hasEntry(groups, href) {
			return navigation.Effect{}, fmt.Errorf("%w: %s", ErrUnknownEntry, href)
		}
		if source == EntrySourceOverflow {
			return c.TapOverflowEntry(href), nil
		}
		return c.TapSubmenuEntry(href), nil
	})
}

// ClickOutside handles a click outside the navigation region
func (s *NavigationService) ClickOutside(ctx context.Context, u NavUser, path string) (NavResult, error) {
	return s.run(ctx, u, path, "click_outside", func(c *navigation.Controller, _ []navigation.NavGroup) (navigation.Effect, error) {
		c.ClickOutside()
		return navigation.Effect{}, nil
	})
}

// Reset returns the user's stored navigation state to the initial state
func (s *NavigationService) Reset(ctx context.Context, u NavUser) error {
	key := navigation.StateKey(u.Variant(), u.UserID)
	unlock := s.locks.Lock(key)
	defer unlock()

	store := navigation.NewStore()
	store.Reset()
	s.transitions.Increment(string(u.Variant()), "reset")
	return store.Persist(ctx, s.repo, key)
}

type transition func(c *navigation.Controller, groups []navigation.NavGroup) (navigation.Effect, error)

func (s *NavigationService) run(ctx context.Context, u NavUser, path, action string, fn transition) (NavResult, error) {
	variant := u.Variant()

	raw, err := s.menus.Groups(ctx, variant, u.Role)
	if err != nil {
		return NavResult{}, fmt.Errorf("load menu: %w", err)
	}
	groups := navigation.BuildGroups(raw, navigation.OptionsFor(variant), s.icons)

	key := navigation.StateKey(variant, u.UserID)
	unlock := s.locks.Lock(key)
	defer unlock()

	store := navigation.NewStore()
	store.Rehydrate(ctx, s.repo, key)
	before := store.State()

	if store.DropStaleGroup(groups) {
		slog.Warn("stored navigation group not in menu, cleared", "key", key, "group", before.ActiveGroupID)
	}

	// path sync only while the user is not browsing a submenu
	if !store.State().IsExpanded {
		if m := navigation.Resolve(path, groups); m.Found {
			store.SetActiveGroup(m.Group.ID)
		}
	}

	ctrl := navigation.NewController(store, navigation.NewBus())
	defer ctrl.Close()

	var effect navigation.Effect
	if fn != nil {
		effect, err = fn(ctrl, groups)
		if err != nil {
			return NavResult{}, err
		}
	}

	after := store.State()
	if after != before {
		if err := store.Persist(ctx, s.repo, key); err != nil {
			slog.Error("failed to persist navigation state", "key", key, "error", err)
		}
	}

	s.transitions.Increment(string(variant), action)
	slog.Debug("navigation transition",
		"user", u.UserID,
		"variant", variant,
		"action", action,
		"mode", navigation.ModeOf(after),
		"active_group", after.ActiveGroupID,
	)

	viewPath := path
	if effect.Push != "" {
		viewPath = effect.Push
	}

	return NavResult{
		View:   navigation.BuildView(groups, viewPath, after, s.primarySize, store.Hydrated()),
		Effect: effect,
	}, nil
}

func hasEntry(groups []navigation.NavGroup, href string) bool {
	for _, g := range groups {
		for _, it := range g.Items {
			if it.Href == href {
				return true
			}
		}
	}
	return false
}

// keyedMutex serialises requests touching the same state key
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
