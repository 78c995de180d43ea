package models

import "time"

// NavState is the database copy of a user's navigation state, used when Redis is not configured
type NavState struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`

	UserKey        string `gorm:"type:varchar(255);uniqueIndex" json:"user_key"`
	ActiveGroupID  string `gorm:"type:varchar(100)" json:"active_group_id"`
	IsExpanded     bool   `json:"is_expanded"`
	IsMoreMenuOpen bool   `json:"is_more_menu_open"`
}
