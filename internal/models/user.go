package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is an account used only for authentication.
type User struct {
	gorm.Model

	Username     string         `gorm:"uniqueIndex;not null"`
	PasswordHash string         `gorm:"not null"`
	Roles        datatypes.JSON // JSON array of role names
}

// RoleNames decodes Roles. A malformed or empty column yields no roles.
func (u *User) RoleNames() []string {
	if len(u.Roles) == 0 {
		return nil
	}

	var roles []string
	if err := json.Unmarshal(u.Roles, &roles); err != nil {
		return nil
	}
	return roles
}

// SetRoles encodes roles into the Roles column.
func (u *User) SetRoles(roles []string) error {
	data, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	u.Roles = datatypes.JSON(data)
	return nil
}
