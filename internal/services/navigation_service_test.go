package services

import (
	"context"
	"errors"
	"testing"

	"yi_connect_echo/internal/models"
	"yi_connect_echo/internal/navigation"
)

type staticMenus struct {
	groups []navigation.RawGroup
	err    error
}

func (s staticMenus) Groups(context.Context, navigation.Variant, models.UserRole) ([]navigation.RawGroup, error) {
	return s.groups, s.err
}

func testMenus() staticMenus {
	leaf := func(href string) navigation.RawEntry { return navigation.RawEntry{Href: href, Label: href} }
	return staticMenus{groups: []navigation.RawGroup{
		{GroupLabel: "Main", Menus: []navigation.RawEntry{leaf("/"), leaf("/profile")}},
		{GroupLabel: "Events", Menus: []navigation.RawEntry{leaf("/events"), leaf("/events/venues")}},
		{GroupLabel: "Finance", Menus: []navigation.RawEntry{leaf("/finance")}},
		{GroupLabel: "Stakeholders", Menus: []navigation.RawEntry{leaf("/stakeholders")}},
		{GroupLabel: "Communications", Menus: []navigation.RawEntry{leaf("/communications")}},
		{GroupLabel: "Knowledge Base", Menus: []navigation.RawEntry{leaf("/knowledge")}},
	}}
}

var member = NavUser{UserID: "u1", Role: models.UserRoleMember}

func newTestService() (*NavigationService, *navigation.MemoryRepository) {
	repo := navigation.NewMemoryRepository()
	return NewNavigationService(testMenus(), repo, 4, nil), repo
}

func storedState(t *testing.T, repo *navigation.MemoryRepository, u NavUser) navigation.State {
	t.Helper()
	s, _, _ := repo.Get(context.Background(), navigation.StateKey(u.Variant(), u.UserID))
	return s
}

func TestViewSyncsActiveGroupFromPath(t *testing.T) {
	svc, repo := newTestService()

	res, err := svc.View(context.Background(), member, "/events/venues/3")
	if err != nil {
		t.Fatal(err)
	}

	if res.View.EffectiveGroupID != "events" || res.View.OverflowCount != 2 {
		t.Errorf("view = group %q overflow %d; want events, 2", res.View.EffectiveGroupID, res.View.OverflowCount)
	}
	if got := storedState(t, repo, member); got.ActiveGroupID != "events" {
		t.Errorf("stored ActiveGroupID = %q; want events", got.ActiveGroupID)
	}
}

func TestNavigateCollapsesScenario(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	if _, err := svc.TapPrimary(ctx, member, "/dashboard", "events"); err != nil {
		t.Fatal(err)
	}
	if got := storedState(t, repo, member); got != (navigation.State{ActiveGroupID: "events", IsExpanded: true}) {
		t.Fatalf("after tap: %+v", got)
	}

	res, err := svc.TapEntry(ctx, member, "/dashboard", EntrySourceSubmenu, "/events/venues")
	if err != nil {
		t.Fatal(err)
	}
	if res.Effect.Push != "/events/venues" {
		t.Errorf("Push = %q; want /events/venues", res.Effect.Push)
	}
	if got := storedState(t, repo, member); got != (navigation.State{ActiveGroupID: "events"}) {
		t.Errorf("after entry tap: %+v", got)
	}
	// "/events" precedes "/events/venues" in the group, so it is the first match
	if res.View.ActiveItem == nil || res.View.ActiveItem.Href != "/events" {
		t.Errorf("view ActiveItem = %+v; want /events", res.View.ActiveItem)
	}
	if res.View.EffectiveGroupID != "events" {
		t.Errorf("view EffectiveGroupID = %q; want events", res.View.EffectiveGroupID)
	}
}

func TestManualBrowseSurvivesPathChange(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	if _, err := svc.TapPrimary(ctx, member, "/dashboard", "finance"); err != nil {
		t.Fatal(err)
	}

	res, _ := svc.View(ctx, member, "/events")
	if res.View.EffectiveGroupID != "finance" {
		t.Errorf("effective while browsing = %q; want finance", res.View.EffectiveGroupID)
	}
	if got := storedState(t, repo, member); got.ActiveGroupID != "finance" {
		t.Errorf("path sync overwrote manual selection: %+v", got)
	}

	res, _ = svc.ClickOutside(ctx, member, "/events")
	if res.View.EffectiveGroupID != "events" {
		t.Errorf("effective after closing = %q; want events", res.View.EffectiveGroupID)
	}
}

func TestOverflowFlow(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	_, _ = svc.TapPrimary(ctx, member, "/dashboard", "events")
	res, _ := svc.ToggleMore(ctx, member, "/dashboard")
	if res.View.IsExpanded || !res.View.IsMoreMenuOpen {
		t.Fatalf("after More: expanded=%v more=%v", res.View.IsExpanded, res.View.IsMoreMenuOpen)
	}

	res, err := svc.TapEntry(ctx, member, "/dashboard", EntrySourceOverflow, "/knowledge")
	if err != nil {
		t.Fatal(err)
	}
	if res.Effect.Push != "/knowledge" || res.View.Mode != navigation.ModeCollapsed {
		t.Errorf("overflow entry = push %q mode %s", res.Effect.Push, res.View.Mode)
	}

	_, _ = svc.ToggleMore(ctx, member, "/knowledge")
	_, _ = svc.CloseOverflow(ctx, member, "/knowledge")
	if got := storedState(t, repo, member); got.IsMoreMenuOpen {
		t.Errorf("overflow still open after close: %+v", got)
	}
}

func TestUnknownTargets(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if _, err := svc.TapPrimary(ctx, member, "/", "payroll"); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("TapPrimary(payroll) err = %v; want ErrUnknownGroup", err)
	}
	if _, err := svc.TapEntry(ctx, member, "/", EntrySourceSubmenu, "/nowhere"); !errors.Is(err, ErrUnknownEntry) {
		t.Errorf("TapEntry(/nowhere) err = %v; want ErrUnknownEntry", err)
	}
}

func TestMenuErrorPropagates(t *testing.T) {
	svc := NewNavigationService(staticMenus{err: errors.New("db down")}, navigation.NewMemoryRepository(), 4, nil)
	if _, err := svc.View(context.Background(), member, "/"); err == nil {
		t.Error("expected menu error")
	}
}

func TestResetAndVariantIsolation(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	admin := NavUser{UserID: "u1", Role: models.UserRoleSuperAdmin}

	_, _ = svc.TapPrimary(ctx, member, "/", "events")
	_, _ = svc.TapPrimary(ctx, admin, "/", "finance")

	if err := svc.Reset(ctx, member); err != nil {
		t.Fatal(err)
	}

	if got := storedState(t, repo, member); got != (navigation.State{}) {
		t.Errorf("member state after reset = %+v; want initial", got)
	}
	if got := storedState(t, repo, admin); got.ActiveGroupID != "finance" {
		t.Errorf("admin state = %+v; want finance untouched", got)
	}
}

func TestKeyedMutexReleasesEntries(t *testing.T) {
	k := keyedMutex{locks: make(map[string]*keyedLock)}
	unlock := k.Lock("a")
	unlock()
	unlock = k.Lock("a")
	unlock()
	if len(k.locks) != 0 {
		t.Errorf("locks retained = %d; want 0", len(k.locks))
	}
}

func TestEntryTapAlwaysCollapses(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	_, _ = svc.ToggleMore(ctx, member, "/dashboard")
	res, err := svc.TapEntry(ctx, member, "/dashboard", EntrySourceSubmenu, "/knowledge")
	if err != nil {
		t.Fatal(err)
	}
	if res.Effect.Push != "/knowledge" || res.View.Mode != navigation.ModeCollapsed {
		t.Errorf("entry tap = push %q mode %s; want /knowledge collapsed", res.Effect.Push, res.View.Mode)
	}
	if got := storedState(t, repo, member); got.IsMoreMenuOpen || got.IsExpanded {
		t.Errorf("stored after entry tap = %+v; want collapsed", got)
	}
}

func TestStaleStoredGroupFallsBack(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	key := navigation.StateKey(member.Variant(), member.UserID)
	_ = repo.Set(ctx, key, navigation.State{ActiveGroupID: "admin-tools", IsExpanded: true})

	res, err := svc.View(ctx, member, "/nowhere")
	if err != nil {
		t.Fatal(err)
	}
	if res.View.EffectiveGroupID != "main" || res.View.ActiveGroup == nil || res.View.Mode != navigation.ModeCollapsed {
		t.Errorf("view = group %q active %v mode %s; want main collapsed", res.View.EffectiveGroupID, res.View.ActiveGroup, res.View.Mode)
	}
	if got := storedState(t, repo, member); got != (navigation.State{}) {
		t.Errorf("stored = %+v; want stale group cleared", got)
	}

	_ = repo.Set(ctx, key, navigation.State{ActiveGroupID: "admin-tools", IsExpanded: true})
	res, _ = svc.View(ctx, member, "/events/venues")
	if res.View.EffectiveGroupID != "events" {
		t.Errorf("EffectiveGroupID = %q; want path match events", res.View.EffectiveGroupID)
	}
	if got := storedState(t, repo, member); got.ActiveGroupID != "events" {
		t.Errorf("stored = %+v; want path-synced events", got)
	}
}
