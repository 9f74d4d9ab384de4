package engineer

import (
	"fmt"

	"fieldops/internal/pkg/errs"
)

// Availability represents an engineer's dispatch availability.
type Availability int

const (
	// AvailabilityUnknown is the invalid zero value.
	AvailabilityUnknown Availability = iota

	// Available means the engineer can take a new job.
	Available

	// OnJob means the engineer is the assigned engineer of a non-terminal job.
	OnJob

	// Offline means the engineer is not reachable for dispatch.
	Offline

	// OnLeave means the engineer is on planned leave.
	OnLeave
)

func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		AvailabilityUnknown: "unknown",
		Available:           "available",
		OnJob:               "on_job",
		Offline:             "offline",
		OnLeave:             "on_leave",
	}
}

// AvailabilityFromString parses a wire-level availability name.
func AvailabilityFromString(s string) (Availability, error) {
	for a, str := range getAvailabilityStrings() {
		if str == s && a != AvailabilityUnknown {
			return a, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("availability is invalid",
		fmt.Errorf("'%s' is not a valid availability status", s))
}

// Validate checks if the Availability value is one of the defined statuses.
func (a Availability) Validate() error {
	if a != Available && a != OnJob && a != Offline && a != OnLeave {
		return errs.NewValueIsInvalidErrorWithCause("availability is invalid",
			fmt.Errorf("%d is not a valid availability status", a))
	}
	return nil
}

// String returns the wire-level name of the availability status.
func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// MarkOnJob transitions available -> on_job. Any other origin conflicts and
// the error message names the actual status so callers can act on it.
func (a Availability) MarkOnJob() (Availability, error) {
	if a != Available {
		return 0, errs.NewConflictError(
			fmt.Sprintf("engineer is not available: current status is '%s'", a.String()))
	}

	return OnJob, nil
}

// Release transitions on_job -> available when the assignment ends.
func (a Availability) Release() (Availability, error) {
	if a != OnJob {
		return 0, errs.NewConflictError(
			fmt.Sprintf("engineer in status '%s' cannot be released", a.String()))
	}

	return Available, nil
}
