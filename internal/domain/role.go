package domain

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role is one of the three account roles issued by the stock API.
type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Roles lists every role in ascending privilege order.
var Roles = []Role{RoleStaff, RoleManager, RoleAdmin}

// ParseRole rejects anything outside the closed role set.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleStaff, RoleManager, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Capability is a UI affordance gated by role. The API enforces the real
// authorization; these checks only decide what to render.
type Capability int

const (
	CapManageStock Capability = iota
	CapManageCatalog
	CapViewLogs
	CapManageUsers
)

func (r Role) Can(c Capability) bool {
	switch c {
	case CapManageStock, CapManageCatalog, CapViewLogs:
		return r == RoleManager || r == RoleAdmin
	case CapManageUsers:
		return r == RoleAdmin
	default:
		return false
	}
}

// Label is the display name of the role. Staff accounts are shown as runners.
func (r Role) Label() string {
	if r == RoleStaff {
		return "Runner"
	}
	// Casers carry state, so one is built per call.
	return cases.Title(language.English).String(string(r))
}
