package models

import (
	"time"
)

// RoleAdmin is the role name that unlocks the admin routes.
const RoleAdmin = "admin"

// Role is a named capability attached to users.
type Role struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(80);uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:varchar(255)"`
}

// User represents an account in the system
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(120);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // Password is not exposed in JSON
	IsActive  bool      `json:"is_active" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Roles     []Role     `json:"-" gorm:"many2many:roles_users;constraint:OnDelete:CASCADE"`
	Favorites []Favorite `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// HasRole reports whether the user's loaded role set contains name.
func (u *User) HasRole(name string) bool {
	for _, role := range u.Roles {
		if role.Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the names of the loaded roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		names = append(names, role.Name)
	}
	return names
}
