package models

import (
	"time"
)

// Role constants for user authorization.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

var ValidRoles = []string{RoleAdmin, RoleEditor, RoleViewer}

// Permission constants. Stored as a plain list on the user; admins
// implicitly hold all of them.
const (
	PermManageArticles = "manage_articles"
	PermManageVideos   = "manage_videos"
	PermManageUsers    = "manage_users"
	PermPublishContent = "publish_content"
)

var ValidPermissions = []string{
	PermManageArticles,
	PermManageVideos,
	PermManageUsers,
	PermPublishContent,
}

// Lockout policy: MaxLoginAttempts failed logins lock the account for LockDuration.
const (
	MaxLoginAttempts = 5
	LockDuration     = 2 * time.Hour
)

type User struct {
	ID            string     `bson:"_id,omitempty" json:"id"`
	FirstName     string     `bson:"firstName" json:"firstName"`
	LastName      string     `bson:"lastName" json:"lastName"`
	Username      string     `bson:"username" json:"username"`
	Email         string     `bson:"email" json:"email"`
	Password      string     `bson:"password" json:"-"` // bcrypt hash
	Role          string     `bson:"role" json:"role"`  // admin, editor, viewer
	Permissions   []string   `bson:"permissions,omitempty" json:"permissions,omitempty"`
	IsActive      bool       `bson:"isActive" json:"isActive"`
	IsApproved    bool       `bson:"isApproved" json:"isApproved"`
	LastLogin     *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	LoginAttempts int        `bson:"loginAttempts" json:"-"`
	LockUntil     *time.Time `bson:"lockUntil,omitempty" json:"-"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Locked reports whether the account is currently locked out after
// repeated failed logins. An expired lockUntil does not count as locked.
func (u *User) Locked(now time.Time) bool {
	return u.LockUntil != nil && now.Before(*u.LockUntil)
}

// HasPermission reports whether the user holds the named permission.
// Admins hold every permission.
func (u *User) HasPermission(perm string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

func RoleValid(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func PermissionValid(perm string) bool {
	for _, p := range ValidPermissions {
		if p == perm {
			return true
		}
	}
	return false
}
