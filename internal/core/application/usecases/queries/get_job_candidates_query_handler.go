package queries

import (
	"context"

	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/services"
	"fieldops/internal/core/ports"
	"fieldops/internal/pkg/errs"
)

// GetJobCandidatesQueryHandler lists the engineers who could serve a job,
// ranked by the distance ranker. Unlike the raw-SQL read queries this one
// goes through the repositories: candidate filtering is domain logic.
type GetJobCandidatesQueryHandler struct {
	jobs       ports.JobRepository
	engineers  ports.EngineerRepository
	ranker     services.DistanceRanker
	authorizer ports.Authorizer
}

// NewGetJobCandidatesQueryHandler creates a handler for candidate listing.
func NewGetJobCandidatesQueryHandler(
	jobs ports.JobRepository,
	engineers ports.EngineerRepository,
	ranker services.DistanceRanker,
	authorizer ports.Authorizer,
) GetJobCandidatesQueryHandler {
	return GetJobCandidatesQueryHandler{
		jobs:       jobs,
		engineers:  engineers,
		ranker:     ranker,
		authorizer: authorizer,
	}
}

// Handle returns the ranked candidates for the job, nearest first.
func (h GetJobCandidatesQueryHandler) Handle(
	ctx context.Context,
	query GetJobCandidatesQuery,
) ([]GetJobCandidatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	if err := h.authorizer.Authorize(actor, ports.ActionReadJobs); err != nil {
		return nil, err
	}

	targetJob, err := h.jobs.Get(ctx, query.JobID())
	if err != nil {
		return nil, err
	}

	if !targetJob.AgencyID().IsEqual(actor.AgencyID) {
		return nil, errs.NewForbiddenError("job belongs to another agency")
	}

	available, err := h.engineers.GetAllAvailable(ctx, targetJob.AgencyID())
	if err != nil {
		return nil, err
	}

	candidates := make([]*engineer.Engineer, 0, len(available))
	for _, e := range available {
		if e.CanServe(targetJob.AgencyID(), targetJob.RequiredSkill()) {
			candidates = append(candidates, e)
		}
	}

	ranked, err := h.ranker.Rank(ctx, targetJob.Site(), candidates)
	if err != nil {
		return nil, err
	}

	responses := make([]GetJobCandidatesQueryResponse, 0, len(ranked))
	for _, rc := range ranked {
		resp := GetJobCandidatesQueryResponse{
			EngineerID:     rc.Engineer.ID(),
			Name:           rc.Engineer.Name(),
			Skill:          int(rc.Engineer.Skill()),
			Rating:         rc.Engineer.Rating(),
			DistanceMeters: rc.DistanceMeters,
			DistanceSource: string(rc.Source),
		}
		if rc.Duration != nil {
			seconds := int64(rc.Duration.Seconds())
			resp.DurationSeconds = &seconds
		}
		responses = append(responses, resp)
	}

	return responses, nil
}
