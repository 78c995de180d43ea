package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuGroup is a top-level navigation category of one shell variant
type MenuGroup struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Variant  string `gorm:"type:varchar(20);index:idx_menu_groups_variant_position,priority:1" json:"variant"` // 'member' or 'admin'
	Label    string `gorm:"type:varchar(100)" json:"label"`
	Icon     string `gorm:"type:varchar(100)" json:"icon"`
	Position int    `gorm:"index:idx_menu_groups_variant_position,priority:2" json:"position"`

	// Relationships
	Entries []MenuEntry `gorm:"foreignKey:MenuGroupID" json:"entries,omitempty"`
}

// MenuEntry is a navigable entry. Entries with a ParentID are sub-entries of that parent.
type MenuEntry struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	MenuGroupID uint   `gorm:"index" json:"menu_group_id"`
	ParentID    *uint  `gorm:"index" json:"parent_id"`
	Href        string `gorm:"type:varchar(255)" json:"href"`
	Label       string `gorm:"type:varchar(100)" json:"label"`
	Icon        string `gorm:"type:varchar(100)" json:"icon"`
	Position    int    `json:"position"`

	// Roles allowed to see the entry; empty means every role
	Roles []string `gorm:"serializer:json" json:"roles"`
}

// VisibleTo reports whether the entry is shown to role
func (e MenuEntry) VisibleTo(role UserRole) bool {
	if len(e.Roles) == 0 {
		return true
	}
	for _, r := range e.Roles {
		if r == string(role) {
			return true
		}
	}
	return false
}
