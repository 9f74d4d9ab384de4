package queries

import (
	"errors"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/guard"
)

var ErrGetJobCandidatesQueryIsNotConstructed = errors.New(
	"GetJobCandidatesQuery must be created via NewGetJobCandidatesQuery constructor",
)

// GetJobCandidatesQuery asks for the ranked list of engineers who could
// serve a pending job: available, same agency, skill at or above the job's
// requirement, nearest first.
type GetJobCandidatesQuery struct {
	jobID kernel.UUID
	actor ports.Actor

	guard guard.ConstructorGuard
}

// NewGetJobCandidatesQuery creates a validated candidate listing query.
func NewGetJobCandidatesQuery(jobID kernel.UUID, actor ports.Actor) (GetJobCandidatesQuery, error) {
	if err := errors.Join(
		jobID.Validate(),
		actor.ID.Validate(),
		actor.AgencyID.Validate(),
	); err != nil {
		return GetJobCandidatesQuery{}, err
	}

	return GetJobCandidatesQuery{
		jobID: jobID,
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// JobID returns the job whose candidates are requested.
func (q GetJobCandidatesQuery) JobID() kernel.UUID { return q.jobID }

// Actor returns who is asking.
func (q GetJobCandidatesQuery) Actor() ports.Actor { return q.actor }

// Validate ensures the query was created through the constructor.
func (q GetJobCandidatesQuery) Validate() error {
	return q.guard.Validate(ErrGetJobCandidatesQueryIsNotConstructed)
}

// GetJobCandidatesQueryResponse is one ranked candidate. DistanceMeters is
// +Inf when the engineer has no known location; DistanceSource tells how the
// distance was obtained.
type GetJobCandidatesQueryResponse struct {
	EngineerID      kernel.UUID
	Name            string
	Skill           int
	Rating          float64
	DistanceMeters  float64
	DurationSeconds *int64
	DistanceSource  string
}
