package engineer

import (
	"errors"
	"strings"
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"
)

var (
	// ErrEngineerIsNotConstructed is returned when an Engineer instance was
	// not created through NewEngineer or RestoreEngineer.
	ErrEngineerIsNotConstructed = errors.New(
		"Engineer must be created via NewEngineer or RestoreEngineer constructor")
)

// Engineer represents a field technician who can be dispatched to jobs.
//
// Engineer maintains these invariants:
//   - Must have a valid unique identifier, owning agency, name and phone
//   - Availability transitions go through MarkOnJob and Release only
//   - Performance counters move only through RecordCompletion
//   - Can only be created through NewEngineer or RestoreEngineer
type Engineer struct {
	// id is the unique identifier for the engineer
	id kernel.UUID

	// agencyID is the owning tenant
	agencyID kernel.UUID

	// name is the engineer's display name
	name string

	// phone is the contact number returned in assignment responses
	phone string

	// availability is the current dispatch availability
	availability Availability

	// skill is the engineer's competence level
	skill kernel.SkillLevel

	// location is the last reported position (nil until first report)
	location *kernel.GeoPoint

	// locationUpdatedAt records when the position was last reported
	locationUpdatedAt *time.Time

	// performance counters, mutated only by job-completion events
	completedCount int
	rating         float64
	successRate    float64

	// isConstructed ensures the engineer was created via a constructor
	isConstructed bool
}

// NewEngineer creates an available Engineer with validation.
func NewEngineer(
	id kernel.UUID,
	agencyID kernel.UUID,
	name string,
	phone string,
	skill kernel.SkillLevel,
) (*Engineer, error) {
	e := &Engineer{
		availability:  Available,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setAgencyID(agencyID),
		e.setName(name),
		e.setPhone(phone),
		e.setSkill(skill),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEngineer reconstructs an Engineer from persisted state.
func RestoreEngineer(
	id kernel.UUID,
	agencyID kernel.UUID,
	name string,
	phone string,
	availability Availability,
	skill kernel.SkillLevel,
	location *kernel.GeoPoint,
	locationUpdatedAt *time.Time,
	completedCount int,
	rating float64,
	successRate float64,
) (*Engineer, error) {
	if err := availability.Validate(); err != nil {
		return nil, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}
	if completedCount < 0 {
		return nil, errs.NewValueIsOutOfRangeError("completed count", completedCount, 0, "unbounded")
	}
	if rating < 0 || rating > 5 {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, 0, 5)
	}
	if successRate < 0 || successRate > 1 {
		return nil, errs.NewValueIsOutOfRangeError("success rate", successRate, 0, 1)
	}

	e := &Engineer{
		availability:      availability,
		location:          location,
		locationUpdatedAt: locationUpdatedAt,
		completedCount:    completedCount,
		rating:            rating,
		successRate:       successRate,
		isConstructed:     true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setAgencyID(agencyID),
		e.setName(name),
		e.setPhone(phone),
		e.setSkill(skill),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate ensures the Engineer instance was properly constructed.
func (e *Engineer) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEngineerIsNotConstructed
	}

	return nil
}

// IsEqual compares two engineers by their unique identifiers.
func (e *Engineer) IsEqual(other *Engineer) bool {
	return other != nil && e.id.IsEqual(other.id)
}

// ID returns the engineer's unique identifier.
func (e *Engineer) ID() kernel.UUID {
	return e.id
}

// AgencyID returns the owning agency (tenant).
func (e *Engineer) AgencyID() kernel.UUID {
	return e.agencyID
}

// Name returns the engineer's display name.
func (e *Engineer) Name() string {
	return e.name
}

// Phone returns the engineer's contact number.
func (e *Engineer) Phone() string {
	return e.phone
}

// Availability returns the current dispatch availability.
func (e *Engineer) Availability() Availability {
	return e.availability
}

// Skill returns the engineer's competence level.
func (e *Engineer) Skill() kernel.SkillLevel {
	return e.skill
}

// Location returns the last reported position, or nil before the first
// report.
func (e *Engineer) Location() *kernel.GeoPoint {
	return e.location
}

// LocationUpdatedAt returns when the position was last reported, or nil.
func (e *Engineer) LocationUpdatedAt() *time.Time {
	return e.locationUpdatedAt
}

// CompletedCount returns the number of completed jobs.
func (e *Engineer) CompletedCount() int {
	return e.completedCount
}

// Rating returns the historical rating on a 0..5 scale.
func (e *Engineer) Rating() float64 {
	return e.rating
}

// SuccessRate returns the fraction of assignments completed successfully.
func (e *Engineer) SuccessRate() float64 {
	return e.successRate
}

// CanServe reports whether the engineer is dispatchable for a job owned by
// the given agency requiring the given skill: same tenant, available, and
// skilled enough.
func (e *Engineer) CanServe(agencyID kernel.UUID, requiredSkill kernel.SkillLevel) bool {
	return e.agencyID.IsEqual(agencyID) &&
		e.availability == Available &&
		e.skill.AtLeast(requiredSkill)
}

// MarkOnJob transitions the engineer to on_job. Conflicts unless the current
// availability is available; the error names the actual status.
func (e *Engineer) MarkOnJob() error {
	next, err := e.availability.MarkOnJob()
	if err != nil {
		return err
	}

	e.availability = next
	return nil
}

// Release returns the engineer to available when their assignment ends.
func (e *Engineer) Release() error {
	next, err := e.availability.Release()
	if err != nil {
		return err
	}

	e.availability = next
	return nil
}

// UpdateLocation records a best-effort position report.
func (e *Engineer) UpdateLocation(p kernel.GeoPoint, at time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}

	e.location = &p
	e.locationUpdatedAt = &at
	return nil
}

// RecordCompletion bumps the performance counters after a finished job. The
// success rate is the running fraction of successful completions over all
// recorded completions.
func (e *Engineer) RecordCompletion(successful bool) {
	total := float64(e.completedCount)
	succeeded := e.successRate * total
	if successful {
		succeeded++
	}

	e.completedCount++
	e.successRate = succeeded / float64(e.completedCount)
}

// setID validates and sets the engineer's unique identifier.
func (e *Engineer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

// setAgencyID validates and sets the owning tenant.
func (e *Engineer) setAgencyID(agencyID kernel.UUID) error {
	if err := agencyID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agency id", err)
	}
	e.agencyID = agencyID
	return nil
}

// setName validates and sets the display name.
func (e *Engineer) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	e.name = name
	return nil
}

// setPhone validates and sets the contact number.
func (e *Engineer) setPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	e.phone = phone
	return nil
}

// setSkill validates and sets the competence level.
func (e *Engineer) setSkill(skill kernel.SkillLevel) error {
	if err := skill.Validate(); err != nil {
		return err
	}
	e.skill = skill
	return nil
}
