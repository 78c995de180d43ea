package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yi_connect_echo/internal/models"
)

// SyncUser records a signed-in user keyed by Firebase UID. A nil db is a no-op.
func SyncUser(ctx context.Context, db *gorm.DB, u models.User) error {
	if db == nil {
		return nil
	}
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "firebase_uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role", "updated_at"}),
	}).Create(&u).Error
	if err != nil {
		return fmt.Errorf("sync user %s: %w", u.FirebaseUID, err)
	}
	return nil
}
