package job

import (
	"fmt"

	"fieldops/internal/pkg/errs"
)

// Status represents the lifecycle state of a job. It implements a state
// machine with defined transitions so jobs follow the dispatch workflow:
//
//	pending ──> assigned ──> accepted ──> travelling ──> onsite ──> completed
//	   │            │            │             │            │
//	   └────────────┴────────────┴─────────────┴────────────┴──> cancelled
//
// The reverse transition assigned -> pending exists only as the compensating
// action of the assignment saga.
type Status int

const (
	// Unknown represents an invalid or undefined status. This value (0)
	// helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a created job awaiting assignment.
	Pending

	// Assigned indicates an engineer has been assigned to the job.
	Assigned

	// Accepted indicates the assigned engineer has accepted the job.
	Accepted

	// Travelling indicates the engineer is en route to the site.
	Travelling

	// Onsite indicates the engineer has arrived at the site.
	Onsite

	// Completed indicates the work has been finished. Terminal.
	Completed

	// Cancelled indicates the job was cancelled before completion. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Assigned:   "assigned",
		Accepted:   "accepted",
		Travelling: "travelling",
		Onsite:     "onsite",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Assigned:   "assigned",
		Accepted:   "accepted",
		Travelling: "travelling",
		Onsite:     "onsite",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-level name of the status. Implements fmt.Stringer
// and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateAssign checks if the status allows assignment without performing
// the transition. Only pending jobs are assignable; anything else is either
// already taken or finished.
func (s Status) ValidateAssign() error {
	if s != Pending {
		return errs.NewConflictError(
			fmt.Sprintf("job in status '%s' cannot be assigned", s.String()))
	}
	return nil
}

// ValidateCanHaveEngineer validates the consistency between a status and the
// presence of an assigned engineer reference.
//
// Business rules:
//   - Pending and cancelled-without-assignment jobs must not reference an engineer
//   - Every status at or past assigned must reference one
//
// Parameters:
//   - engineer: whether the job has an assigned engineer reference
func (s Status) ValidateCanHaveEngineer(engineer bool) error {
	assignedOrLater := s == Assigned || s == Accepted || s == Travelling || s == Onsite || s == Completed

	if engineer && !assignedOrLater && s != Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("'%s' is not a valid status to have an engineer", s.String()))
	}

	if !engineer && assignedOrLater {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("'%s' is not a valid status to have no engineer", s.String()))
	}

	return nil
}

// Assign transitions pending -> assigned.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}

	return Assigned, nil
}

// Unassign reverses assigned -> pending. This is the compensating transition
// of the assignment saga and is invalid from any other state.
func (s Status) Unassign() (Status, error) {
	if s != Assigned {
		return 0, errs.NewConflictError(
			fmt.Sprintf("job in status '%s' cannot be unassigned", s.String()))
	}

	return Pending, nil
}

// Accept transitions assigned -> accepted.
func (s Status) Accept() (Status, error) {
	if s != Assigned {
		return 0, errs.NewConflictError(
			fmt.Sprintf("job in status '%s' cannot be accepted", s.String()))
	}

	return Accepted, nil
}

// Start transitions accepted -> travelling.
func (s Status) Start() (Status, error) {
	if s != Accepted {
		return 0, errs.NewConflictError(
			fmt.Sprintf("job in status '%s' cannot start travel", s.String()))
	}

	return Travelling, nil
}

// Arrive transitions travelling -> onsite.
func (s Status) Arrive() (Status, error) {
	if s != Travelling {
		return 0, errs.NewConflictError(
			fmt.Sprintf("job in status '%s' cannot arrive onsite", s.String()))
	}

	return Onsite, nil
}

// Complete transitions onsite -> completed.
func (s Status) Complete() (Status, error) {
	if s != Onsite {
		return 0, errs.NewConflictError(
			fmt.Sprintf("job in status '%s' cannot be completed", s.String()))
	}

	return Completed, nil
}

// Cancel transitions any non-terminal status -> cancelled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewConflictError(
			fmt.Sprintf("job in status '%s' cannot be cancelled", s.String()))
	}

	return Cancelled, nil
}
