package ports

import "fieldops/internal/core/domain/model/kernel"

// Actor is a resolved session: who is calling, for which agency, in what
// role. Session issuance is an external collaborator; the core only consumes
// the resolved identity.
type Actor struct {
	ID       kernel.UUID
	AgencyID kernel.UUID
	Role     string
}

// Action names an operation submitted to the permission check.
type Action string

const (
	ActionCreateJob   Action = "job.create"
	ActionAssignJob   Action = "job.assign"
	ActionCancelJob   Action = "job.cancel"
	ActionCompleteJob Action = "job.complete"
	ActionCreateEng   Action = "engineer.create"
	ActionReadJobs    Action = "job.read"
)

// Authorizer is the role-by-action permission check. Tenant scoping (does
// the actor's agency own the record) stays in the command handlers; the
// authorizer only answers whether the role may perform the action at all.
type Authorizer interface {
	Authorize(actor Actor, action Action) error
}
