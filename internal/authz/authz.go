package authz

import (
	"Folio/internal/domain"
	"fmt"
)

type Role string
type Action string

const (
	RoleViewer  Role = "viewer"
	RoleEditor  Role = "editor"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

const (
	ActionRead      Action = "read"
	ActionWrite     Action = "write"
	ActionManage    Action = "manage"
	ActionReconcile Action = "reconcile"
)

// Principal is the caller of a service operation.
type Principal struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

const systemUserID = "system"

// System is the principal used by scheduled jobs and the CLI.
func System() Principal {
	return Principal{UserID: systemUserID, Role: RoleAdmin}
}

func Can(role Role, action Action) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleManager:
		return action == ActionRead || action == ActionWrite || action == ActionManage
	case RoleEditor:
		return action == ActionRead || action == ActionWrite
	case RoleViewer:
		return action == ActionRead
	default:
		return false
	}
}

func Normalize(role string) Role {
	switch Role(role) {
	case RoleViewer, RoleEditor, RoleManager, RoleAdmin:
		return Role(role)
	default:
		return RoleViewer
	}
}

// Authorize returns domain.ErrForbidden when the principal may not perform action.
func Authorize(principal Principal, action Action) error {
	if !Can(principal.Role, action) {
		return fmt.Errorf("%s (%s) cannot %s: %w", principal.UserID, principal.Role, action, domain.ErrForbidden)
	}
	return nil
}
