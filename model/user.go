package model

import "gorm.io/gorm"

// Account roles. Every account starts as a patient; only roster
// administration may raise a role to admin.
const (
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

// User represents a registered account. Email is a pointer so role records
// created by promotion ahead of registration store NULL instead of colliding
// on the unique index.
// @Description Registered user account
type User struct {
	gorm.Model
	Name  string  `json:"name" gorm:"column:name;type:varchar(191)" example:"John Doe"`
	Email *string `json:"email" gorm:"column:email;type:varchar(191);uniqueIndex" example:"john@example.com"`
	Role  string  `json:"role" gorm:"column:role;type:varchar(32);not null;default:patient" example:"patient"`
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
