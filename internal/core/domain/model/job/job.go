package job

import (
	"errors"
	"strings"
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/pkg/errs"
)

var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created
	// through the NewJob or RestoreJob factory methods.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")
)

// Job represents a unit of field-service work. It is the aggregate root that
// manages the job lifecycle from creation through assignment to completion.
//
// Job maintains these invariants:
//   - Must have a valid unique identifier, job number and owning agency
//   - The assigned engineer reference is non-nil if and only if the status
//     is at or past assigned
//   - Status transitions follow the state machine in status.go
//   - Can only be created through NewJob or RestoreJob
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Job struct {
	// id is the unique identifier for the job
	id kernel.UUID

	// number is the human-readable job number, unique per agency
	number string

	// agencyID is the owning tenant
	agencyID kernel.UUID

	// clientName identifies the client the work is performed for
	clientName string

	// status is the current state in the job lifecycle
	status Status

	// engineerID is the assigned engineer's ID (nil until assigned)
	engineerID *kernel.UUID

	// assignedAt records when the assignment landed (nil until assigned)
	assignedAt *time.Time

	// requiredSkill is the minimum engineer skill level for this job
	requiredSkill kernel.SkillLevel

	// site is the location the work happens at
	site kernel.GeoPoint

	// siteAddress is the human-readable site address
	siteAddress string

	// scheduledAt is the planned start time (nil when unscheduled)
	scheduledAt *time.Time

	// urgency classifies how quickly the job must be attended
	urgency Urgency

	// lifecycle timestamps, each nil until the state is reached
	createdAt   time.Time
	acceptedAt  *time.Time
	startedAt   *time.Time
	completedAt *time.Time
	cancelledAt *time.Time

	// isConstructed ensures the job was created via a constructor
	isConstructed bool
}

// NewJob creates a pending Job with validation. This is the only way to
// create a new job; RestoreJob reconstructs persisted ones.
func NewJob(
	id kernel.UUID,
	number string,
	agencyID kernel.UUID,
	clientName string,
	site kernel.GeoPoint,
	siteAddress string,
	requiredSkill kernel.SkillLevel,
	urgency Urgency,
	scheduledAt *time.Time,
	now time.Time,
) (*Job, error) {
	j := &Job{
		status:        Pending,
		scheduledAt:   scheduledAt,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setNumber(number),
		j.setAgencyID(agencyID),
		j.setClientName(clientName),
		j.setSite(site, siteAddress),
		j.setRequiredSkill(requiredSkill),
		j.setUrgency(urgency),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// RestoreJob reconstructs a Job from persisted state. It validates the same
// invariants as NewJob plus the status/engineer consistency rule, so corrupt
// rows are rejected at the storage boundary.
func RestoreJob(
	id kernel.UUID,
	number string,
	agencyID kernel.UUID,
	clientName string,
	status Status,
	engineerID *kernel.UUID,
	assignedAt *time.Time,
	site kernel.GeoPoint,
	siteAddress string,
	requiredSkill kernel.SkillLevel,
	urgency Urgency,
	scheduledAt *time.Time,
	createdAt time.Time,
	acceptedAt, startedAt, completedAt, cancelledAt *time.Time,
) (*Job, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveEngineer(engineerID != nil); err != nil {
		return nil, err
	}
	if engineerID != nil {
		if err := engineerID.Validate(); err != nil {
			return nil, err
		}
	}

	j := &Job{
		status:        status,
		engineerID:    engineerID,
		assignedAt:    assignedAt,
		scheduledAt:   scheduledAt,
		createdAt:     createdAt,
		acceptedAt:    acceptedAt,
		startedAt:     startedAt,
		completedAt:   completedAt,
		cancelledAt:   cancelledAt,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setNumber(number),
		j.setAgencyID(agencyID),
		j.setClientName(clientName),
		j.setSite(site, siteAddress),
		j.setRequiredSkill(requiredSkill),
		j.setUrgency(urgency),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// Validate ensures the Job instance was properly constructed.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}

	return nil
}

// IsEqual compares two jobs by their unique identifiers.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

// ID returns the job's unique identifier.
func (j *Job) ID() kernel.UUID {
	return j.id
}

// Number returns the human-readable job number.
func (j *Job) Number() string {
	return j.number
}

// AgencyID returns the owning agency (tenant).
func (j *Job) AgencyID() kernel.UUID {
	return j.agencyID
}

// ClientName returns the client the work is performed for.
func (j *Job) ClientName() string {
	return j.clientName
}

// Status returns the current lifecycle status.
func (j *Job) Status() Status {
	return j.status
}

// EngineerID returns the assigned engineer's ID, or nil while unassigned.
func (j *Job) EngineerID() *kernel.UUID {
	return j.engineerID
}

// AssignedAt returns when the assignment landed, or nil while unassigned.
func (j *Job) AssignedAt() *time.Time {
	return j.assignedAt
}

// Site returns the job site location.
func (j *Job) Site() kernel.GeoPoint {
	return j.site
}

// SiteAddress returns the human-readable site address.
func (j *Job) SiteAddress() string {
	return j.siteAddress
}

// RequiredSkill returns the minimum engineer skill level.
func (j *Job) RequiredSkill() kernel.SkillLevel {
	return j.requiredSkill
}

// Urgency returns the urgency class.
func (j *Job) Urgency() Urgency {
	return j.urgency
}

// ScheduledAt returns the planned start time, or nil when unscheduled.
func (j *Job) ScheduledAt() *time.Time {
	return j.scheduledAt
}

// CreatedAt returns the creation timestamp.
func (j *Job) CreatedAt() time.Time {
	return j.createdAt
}

// AcceptedAt returns when the engineer accepted, or nil.
func (j *Job) AcceptedAt() *time.Time {
	return j.acceptedAt
}

// StartedAt returns when travel started, or nil.
func (j *Job) StartedAt() *time.Time {
	return j.startedAt
}

// CompletedAt returns when the work finished, or nil.
func (j *Job) CompletedAt() *time.Time {
	return j.completedAt
}

// CancelledAt returns when the job was cancelled, or nil.
func (j *Job) CancelledAt() *time.Time {
	return j.cancelledAt
}

// ValidateAssign reports whether the job can currently be assigned. A job
// with an engineer reference or any status other than pending is not
// assignable.
func (j *Job) ValidateAssign() error {
	if j.engineerID != nil {
		return errs.NewConflictError("job is already assigned")
	}

	return j.status.ValidateAssign()
}

// Assign assigns the job to an engineer and moves the status to assigned.
// The engineer ID must be valid and the job must be in pending status with
// no engineer reference.
func (j *Job) Assign(engineerID kernel.UUID, at time.Time) error {
	if err := engineerID.Validate(); err != nil {
		return err
	}

	if j.engineerID != nil {
		return errs.NewConflictError("job is already assigned")
	}

	newStatus, err := j.status.Assign()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.engineerID = &engineerID
	j.assignedAt = &at
	return nil
}

// Unassign reverses a just-landed assignment: status back to pending, the
// engineer reference and assignment timestamp cleared. This is the
// compensating action of the assignment saga.
func (j *Job) Unassign() error {
	newStatus, err := j.status.Unassign()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.engineerID = nil
	j.assignedAt = nil
	return nil
}

// Accept marks the assignment as accepted by the engineer.
func (j *Job) Accept(at time.Time) error {
	newStatus, err := j.status.Accept()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.acceptedAt = &at
	return nil
}

// Start marks the engineer as travelling to the site.
func (j *Job) Start(at time.Time) error {
	newStatus, err := j.status.Start()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.startedAt = &at
	return nil
}

// Arrive marks the engineer as onsite.
func (j *Job) Arrive() error {
	newStatus, err := j.status.Arrive()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

// Complete marks the job as completed. Terminal.
func (j *Job) Complete(at time.Time) error {
	newStatus, err := j.status.Complete()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.completedAt = &at
	return nil
}

// Cancel marks the job as cancelled from any non-terminal state. Terminal.
func (j *Job) Cancel(at time.Time) error {
	newStatus, err := j.status.Cancel()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.cancelledAt = &at
	return nil
}

// setID validates and sets the job's unique identifier.
func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

// setNumber validates and sets the human-readable job number.
func (j *Job) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("job number")
	}
	j.number = number
	return nil
}

// setAgencyID validates and sets the owning tenant.
func (j *Job) setAgencyID(agencyID kernel.UUID) error {
	if err := agencyID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("agency id", err)
	}
	j.agencyID = agencyID
	return nil
}

// setClientName validates and sets the client name.
func (j *Job) setClientName(clientName string) error {
	if strings.TrimSpace(clientName) == "" {
		return errs.NewValueIsRequiredError("client name")
	}
	j.clientName = clientName
	return nil
}

// setSite validates and sets the site location and address.
func (j *Job) setSite(site kernel.GeoPoint, address string) error {
	if err := site.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("site address")
	}
	j.site = site
	j.siteAddress = address
	return nil
}

// setRequiredSkill validates and sets the minimum skill level.
func (j *Job) setRequiredSkill(skill kernel.SkillLevel) error {
	if err := skill.Validate(); err != nil {
		return err
	}
	j.requiredSkill = skill
	return nil
}

// setUrgency validates and sets the urgency class.
func (j *Job) setUrgency(urgency Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}
	j.urgency = urgency
	return nil
}
