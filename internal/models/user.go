package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole is the role a member holds in their chapter or nationally
type UserRole string

const (
	UserRoleMember        UserRole = "Member"
	UserRoleChair         UserRole = "Chair"
	UserRoleCoChair       UserRole = "Co-Chair"
	UserRoleECMember      UserRole = "EC Member"
	UserRoleChapterAdmin  UserRole = "Chapter Admin"
	UserRoleNationalAdmin UserRole = "National Admin"
	UserRoleSuperAdmin    UserRole = "Super Admin"
)

// AllRoles lists every role, lowest privilege first
var AllRoles = []UserRole{
	UserRoleMember,
	UserRoleChair,
	UserRoleCoChair,
	UserRoleECMember,
	UserRoleChapterAdmin,
	UserRoleNationalAdmin,
	UserRoleSuperAdmin,
}

// ParseUserRole maps a claim value to a role, defaulting to Member
func ParseUserRole(s string) UserRole {
	for _, r := range AllRoles {
		if string(r) == s {
			return r
		}
	}
	return UserRoleMember
}

// IsAdmin reports whether the role uses the admin navigation shell
func (r UserRole) IsAdmin() bool {
	switch r {
	case UserRoleChapterAdmin, UserRoleNationalAdmin, UserRoleSuperAdmin:
		return true
	}
	return false
}

// User represents a signed-in member of the organization
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	FirebaseUID string   `gorm:"type:varchar(128);uniqueIndex" json:"firebase_uid"`
	Name        string   `gorm:"type:varchar(255)" json:"name"`
	Email       string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	ChapterID   *uint    `json:"chapter_id"`
	Role        UserRole `gorm:"type:varchar(30);default:'Member'" json:"role"`
}
