package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yi_connect_echo/internal/models"
	"yi_connect_echo/internal/navigation"
)

// RedisStateRepository stores navigation state as JSON with a sliding TTL:
// every read or write pushes the expiry out again.
type RedisStateRepository struct {
	cache *RedisCache
	ttl   time.Duration
}

func NewRedisStateRepository(cache *RedisCache, ttl time.Duration) *RedisStateRepository {
	return &RedisStateRepository{cache: cache, ttl: ttl}
}

func (r *RedisStateRepository) Get(ctx context.Context, key string) (navigation.State, bool, error) {
	var s navigation.State
	err := r.cache.GetEx(ctx, key, &s, r.ttl)
	if errors.Is(err, redis.Nil) {
		return navigation.State{}, false, nil
	}
	if err != nil {
		return navigation.State{}, false, fmt.Errorf("read navigation state %s: %w", key, err)
	}
	return s, true, nil
}

func (r *RedisStateRepository) Set(ctx context.Context, key string, s navigation.State) error {
	if err := r.cache.Set(ctx, key, s, r.ttl); err != nil {
		return fmt.Errorf("write navigation state %s: %w", key, err)
	}
	return nil
}

// DBStateRepository stores navigation state in the nav_states table
type DBStateRepository struct {
	db *gorm.DB
}

func NewDBStateRepository(db *gorm.DB) *DBStateRepository {
	return &DBStateRepository{db: db}
}

func (r *DBStateRepository) Get(ctx context.Context, key string) (navigation.State, bool, error) {
	var row models.NavState
	err := r.db.WithContext(ctx).Where("user_key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return navigation.State{}, false, nil
	}
	if err != nil {
		return navigation.State{}, false, fmt.Errorf("read navigation state %s: %w", key, err)
	}
	return navigation.State{
		ActiveGroupID:  row.ActiveGroupID,
		IsExpanded:     row.IsExpanded,
		IsMoreMenuOpen: row.IsMoreMenuOpen,
	}, true, nil
}

func (r *DBStateRepository) Set(ctx context.Context, key string, s navigation.State) error {
	row := models.NavState{
		UserKey:        key,
		ActiveGroupID:  s.ActiveGroupID,
		IsExpanded:     s.IsExpanded,
		IsMoreMenuOpen: s.IsMoreMenuOpen,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"active_group_id", "is_expanded", "is_more_menu_open", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("write navigation state %s: %w", key, err)
	}
	return nil
}

// PruneNavStates deletes database state rows not updated since cutoff
func PruneNavStates(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&models.NavState{})
	return res.RowsAffected, res.Error
}
