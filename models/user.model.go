package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of account roles. Keeping this a dedicated type (rather
// than free-form strings) means a typo in a route guard fails to compile.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

// ParseRole maps a request-supplied role string onto the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleInstructor:
		return RoleInstructor, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Valid reports whether the role is one of the three known values.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleInstructor || r == RoleAdmin
}

type User struct {
	gorm.Model
	Name      string     `json:"name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"unique;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Role      Role       `json:"role" gorm:"type:varchar(16);default:'STUDENT'"`
	Bio       string     `json:"bio" gorm:"type:text;default:''"`
	AvatarURL string     `json:"avatar_url" gorm:"default:''"`
	LastLogin *time.Time `json:"last_login"`
	IsBlocked bool       `json:"is_blocked" gorm:"default:false"`
	IsDeleted bool       `json:"-" gorm:"default:false"`
}
