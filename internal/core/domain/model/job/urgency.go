package job

import (
	"fmt"

	"fieldops/internal/pkg/errs"
)

// Urgency classifies how quickly a job must be attended to. It is scheduling
// metadata only; it does not affect the assignment state machine.
type Urgency int

const (
	// UrgencyUnknown is the invalid zero value.
	UrgencyUnknown Urgency = iota

	// Routine jobs follow normal scheduling.
	Routine

	// Urgent jobs should be attended the same day.
	Urgent

	// Emergency jobs need immediate attention.
	Emergency
)

func getUrgencyStrings() map[Urgency]string {
	return map[Urgency]string{
		UrgencyUnknown: "unknown",
		Routine:        "routine",
		Urgent:         "urgent",
		Emergency:      "emergency",
	}
}

// UrgencyFromString parses a wire-level urgency name.
func UrgencyFromString(s string) (Urgency, error) {
	for u, str := range getUrgencyStrings() {
		if str == s && u != UrgencyUnknown {
			return u, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause("urgency is invalid",
		fmt.Errorf("'%s' is not a valid urgency class", s))
}

// Validate checks if the Urgency value is one of the defined classes.
func (u Urgency) Validate() error {
	if u != Routine && u != Urgent && u != Emergency {
		return errs.NewValueIsInvalidErrorWithCause("urgency is invalid",
			fmt.Errorf("%d is not a valid urgency class", u))
	}
	return nil
}

// String returns the wire-level name of the urgency class.
func (u Urgency) String() string {
	if str, ok := getUrgencyStrings()[u]; ok {
		return str
	}
	return "unknown"
}
