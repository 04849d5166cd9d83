package entity

import (
	"database/sql"

	"github.com/questdrop/backend/pkg/enum"
)

type GlobalRole string

var (
	RoleSuperAdmin = enum.New(GlobalRole("super_admin"))
	RoleAdmin      = enum.New(GlobalRole("admin"))
	RoleUser       = enum.New(GlobalRole("user"))
)

// GlobalAdminRoles are roles allowed to verify submissions and manage quests.
var GlobalAdminRoles = []GlobalRole{RoleSuperAdmin, RoleAdmin}

type User struct {
	Base

	WalletAddress sql.NullString `gorm:"uniqueIndex"`
	Name          string         `gorm:"uniqueIndex"`
	Role          GlobalRole
}
