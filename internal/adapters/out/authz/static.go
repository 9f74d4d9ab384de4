// Package authz implements role-based permission checks for the dispatch
// API.
package authz

import (
	"fmt"

	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
)

// Role names recognised by the permission matrix.
const (
	RoleAdmin      = "admin"
	RoleDispatcher = "dispatcher"
	RoleEngineer   = "engineer"
	RoleViewer     = "viewer"
)

// permissions maps each role to the actions it may perform. Tenant scoping
// is not decided here: handlers verify the actor's agency owns the record.
var permissions = map[string]map[ports.Action]bool{
	RoleAdmin: {
		ports.ActionCreateJob:   true,
		ports.ActionAssignJob:   true,
		ports.ActionCancelJob:   true,
		ports.ActionCompleteJob: true,
		ports.ActionCreateEng:   true,
		ports.ActionReadJobs:    true,
	},
	RoleDispatcher: {
		ports.ActionCreateJob:   true,
		ports.ActionAssignJob:   true,
		ports.ActionCancelJob:   true,
		ports.ActionCompleteJob: true,
		ports.ActionReadJobs:    true,
	},
	RoleEngineer: {
		ports.ActionCompleteJob: true,
		ports.ActionReadJobs:    true,
	},
	RoleViewer: {
		ports.ActionReadJobs: true,
	},
}

// StaticAuthorizer answers permission checks from a fixed role matrix.
type StaticAuthorizer struct{}

// NewStaticAuthorizer creates the role-matrix authorizer.
func NewStaticAuthorizer() StaticAuthorizer {
	return StaticAuthorizer{}
}

// Authorize reports whether the actor's role allows the action.
func (StaticAuthorizer) Authorize(actor ports.Actor, action ports.Action) error {
	allowed, known := permissions[actor.Role]
	if !known {
		return errs.NewForbiddenError(fmt.Sprintf("unknown role %q", actor.Role))
	}

	if !allowed[action] {
		return errs.NewForbiddenError(fmt.Sprintf("role %q may not perform %q", actor.Role, action))
	}

	return nil
}
