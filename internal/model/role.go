package model

import (
	"time"

	"github.com/google/uuid"
)

// RoleName is the closed set of role kinds.
type RoleName string

const (
	RoleAdmin    RoleName = "ADMIN"
	RoleEmployee RoleName = "EMPLOYEE"
	RoleSeller   RoleName = "SELLER"
)

// RoleNames lists every valid role kind in provisioning order.
var RoleNames = []RoleName{RoleAdmin, RoleEmployee, RoleSeller}

func (n RoleName) Valid() bool {
	switch n {
	case RoleAdmin, RoleEmployee, RoleSeller:
		return true
	}
	return false
}

// IsSuperuser is the only place that decides which role kind bypasses permission checks.
func (n RoleName) IsSuperuser() bool { return n == RoleAdmin }

// PermissionName is a capability tag from the permission catalog.
type PermissionName string

const (
	PermManageEmployees PermissionName = "MANAGE_EMPLOYEES"
	PermManageInventory PermissionName = "MANAGE_INVENTORY"
	PermManageSales     PermissionName = "MANAGE_SALES"
	PermViewReports     PermissionName = "VIEW_REPORTS"
	PermManageSuppliers PermissionName = "MANAGE_SUPPLIERS"
)

type Role struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        RoleName     `gorm:"type:varchar(30);uniqueIndex;not null"`
	Description string       `gorm:"not null;default:''"`
	Permissions []Permission `gorm:"many2many:role_has_permissions;"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Permission struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        PermissionName `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string         `gorm:"not null;default:''"`
	CreatedAt   time.Time
}

// RoleHasPermission is the join row behind Role.Permissions.
type RoleHasPermission struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (RoleHasPermission) TableName() string { return "role_has_permissions" }
