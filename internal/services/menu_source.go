package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"yi_connect_echo/internal/models"
	"yi_connect_echo/internal/navigation"
)

const menuCachePattern = "nav:menu:*"

// MenuCacheKey is the cache key of a role-filtered menu
func MenuCacheKey(variant navigation.Variant, role models.UserRole) string {
	return fmt.Sprintf("nav:menu:%s:%s", variant, role)
}

// MenuSource supplies role-filtered menus, read through the Redis cache when available
type MenuSource struct {
	db    *gorm.DB
	cache *RedisCache
	ttl   time.Duration
}

// NewMenuSource creates a menu source. db and cache may both be nil, in which
// case the built-in catalog is served uncached.
func NewMenuSource(db *gorm.DB, cache *RedisCache, ttl time.Duration) *MenuSource {
	return &MenuSource{db: db, cache: cache, ttl: ttl}
}

// Groups returns the raw menu groups visible to role in the given shell
func (s *MenuSource) Groups(ctx context.Context, variant navigation.Variant, role models.UserRole) ([]navigation.RawGroup, error) {
	return GetOrSet(s.cache, ctx, MenuCacheKey(variant, role), s.ttl, func() ([]navigation.RawGroup, error) {
		defs, err := s.definitions(ctx, variant)
		if err != nil {
			return nil, err
		}
		return FilterForRole(defs, role), nil
	})
}

func (s *MenuSource) definitions(ctx context.Context, variant navigation.Variant) ([]MenuDefinition, error) {
	if s.db == nil {
		return DefaultMenus(variant), nil
	}

	var groups []models.MenuGroup
	err := s.db.WithContext(ctx).
		Where("variant = ?", string(variant)).
		Order("position").
		Preload("Entries", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("load %s menu: %w", variant, err)
	}

	if len(groups) == 0 {
		slog.Warn("no menu rows found, serving built-in catalog", "variant", variant)
		return DefaultMenus(variant), nil
	}

	return definitionsFromRows(groups), nil
}

// definitionsFromRows rebuilds the two-level menu from flat entry rows
func definitionsFromRows(groups []models.MenuGroup) []MenuDefinition {
	defs := make([]MenuDefinition, 0, len(groups))
	for _, g := range groups {
		children := make(map[uint][]EntryDefinition)
		for _, e := range g.Entries {
			if e.ParentID != nil {
				children[*e.ParentID] = append(children[*e.ParentID], entryDefinition(e))
			}
		}

		def := MenuDefinition{Label: g.Label, Icon: g.Icon}
		for _, e := range g.Entries {
			if e.ParentID != nil {
				continue
			}
			ed := entryDefinition(e)
			ed.Submenus = children[e.ID]
			def.Entries = append(def.Entries, ed)
		}
		defs = append(defs, def)
	}
	return defs
}

func entryDefinition(e models.MenuEntry) EntryDefinition {
	return EntryDefinition{Href: e.Href, Label: e.Label, Icon: e.Icon, Roles: e.Roles}
}

// InvalidateMenuCache drops every cached menu
func InvalidateMenuCache(ctx context.Context, cache *RedisCache) (int, error) {
	if cache == nil {
		return 0, nil
	}
	return cache.DeletePattern(ctx, menuCachePattern)
}

// SeedMenus inserts the built-in catalog for each variant whose menu table is empty
func SeedMenus(ctx context.Context, db *gorm.DB) error {
	for _, variant := range []navigation.Variant{navigation.VariantMember, navigation.VariantAdmin} {
		var count int64
		if err := db.WithContext(ctx).Model(&models.MenuGroup{}).Where("variant = ?", string(variant)).Count(&count).Error; err != nil {
			return fmt.Errorf("count %s menu groups: %w", variant, err)
		}
		if count > 0 {
			continue
		}

		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for gi, def := range DefaultMenus(variant) {
				group := models.MenuGroup{Variant: string(variant), Label: def.Label, Icon: def.Icon, Position: gi}
				if err := tx.Create(&group).Error; err != nil {
					return err
				}
				if err := seedEntries(tx, group.ID, nil, def.Entries); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("seed %s menu: %w", variant, err)
		}
		slog.Info("seeded menu catalog", "variant", variant)
	}
	return nil
}

func seedEntries(tx *gorm.DB, groupID uint, parentID *uint, entries []EntryDefinition) error {
	for i, e := range entries {
		row := models.MenuEntry{
			MenuGroupID: groupID,
			ParentID:    parentID,
			Href:        e.Href,
			Label:       e.Label,
			Icon:        e.Icon,
			Position:    i,
			Roles:       e.Roles,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if len(e.Submenus) > 0 {
			id := row.ID
			if err := seedEntries(tx, groupID, &id, e.Submenus); err != nil {
				return err
			}
		}
	}
	return nil
}
