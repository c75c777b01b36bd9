package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleSpecialist     Role = "specialist"
	RoleCollector      Role = "collector"
	RoleChecker        Role = "checker"
	RoleStaff          Role = "staff"
	RoleGeneralManager Role = "general manager"
	RoleCashier        Role = "cashier"
)

// Roles lists every role the back office knows about, in display order.
var Roles = []Role{
	RoleAdmin,
	RoleSpecialist,
	RoleCollector,
	RoleChecker,
	RoleStaff,
	RoleGeneralManager,
	RoleCashier,
}

// NormalizeRole lower-cases a stored or submitted role. It does not validate it.
func NormalizeRole(role string) Role {
	return Role(strings.ToLower(role))
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"fullname"`
	Email        string     `json:"email,omitempty"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	Area         *string    `json:"area,omitempty"`
	Franchise    *string    `json:"franchise_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	Version      int32      `json:"-"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
