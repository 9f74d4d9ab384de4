package services

import (
	"context"
	"math"
	"sort"
	"time"

	"fieldops/internal/core/domain/model/engineer"
	"fieldops/internal/core/domain/model/kernel"
)

// RouteEstimate is a road-distance provider's answer for one origin/
// destination pair.
type RouteEstimate struct {
	DistanceMeters float64
	Duration       time.Duration
}

// RouteEstimator computes road distance and travel duration between two
// points. Implementations call an external routing provider and should
// return an error when it is unreachable; the ranker treats any error as
// "provider unavailable" and falls back to great-circle distance.
type RouteEstimator interface {
	Estimate(ctx context.Context, from, to kernel.GeoPoint) (RouteEstimate, error)
}

// DistanceSource names which metric produced a candidate's distance.
type DistanceSource string

const (
	// SourceProvider marks a road distance from the routing provider.
	SourceProvider DistanceSource = "provider"
	// SourceHaversine marks a great-circle fallback distance.
	SourceHaversine DistanceSource = "haversine"
	// SourceNone marks a candidate with no reported location; such
	// candidates rank last.
	SourceNone DistanceSource = "none"
)

// RankedCandidate is one engineer in ranking order with the metric that
// placed them there. Duration is nil for haversine fallback results and for
// candidates without a location.
type RankedCandidate struct {
	Engineer       *engineer.Engineer
	DistanceMeters float64
	Duration       *time.Duration
	Source         DistanceSource
}

// DistanceRanker orders candidate engineers for a job site. Candidates must
// already be filtered to available engineers of the job's agency; the ranker
// only measures and sorts.
//
// Ordering: ascending distance, ties broken by descending skill level, then
// descending historical rating.
type DistanceRanker struct {
	estimator RouteEstimator
}

// NewDistanceRanker creates a ranker using the given road-distance
// estimator. A nil estimator is allowed and means every candidate is ranked
// by great-circle distance.
func NewDistanceRanker(estimator RouteEstimator) DistanceRanker {
	return DistanceRanker{estimator: estimator}
}

// Rank measures each candidate's distance to the site and returns them in
// ranking order. Candidates without a reported location sort after all
// measured ones. The input slice is not modified.
func (r DistanceRanker) Rank(
	ctx context.Context,
	site kernel.GeoPoint,
	candidates []*engineer.Engineer,
) ([]RankedCandidate, error) {
	if err := site.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		rc, err := r.measure(ctx, site, c)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, rc)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DistanceMeters != ranked[j].DistanceMeters {
			return ranked[i].DistanceMeters < ranked[j].DistanceMeters
		}
		if ranked[i].Engineer.Skill() != ranked[j].Engineer.Skill() {
			return ranked[i].Engineer.Skill() > ranked[j].Engineer.Skill()
		}
		return ranked[i].Engineer.Rating() > ranked[j].Engineer.Rating()
	})

	return ranked, nil
}

// measure computes one candidate's distance: provider first, haversine on
// provider failure, +Inf for candidates that never reported a location.
func (r DistanceRanker) measure(
	ctx context.Context,
	site kernel.GeoPoint,
	c *engineer.Engineer,
) (RankedCandidate, error) {
	loc := c.Location()
	if loc == nil {
		return RankedCandidate{
			Engineer:       c,
			DistanceMeters: math.Inf(1),
			Source:         SourceNone,
		}, nil
	}

	if r.estimator != nil {
		estimate, err := r.estimator.Estimate(ctx, *loc, site)
		if err == nil {
			duration := estimate.Duration
			return RankedCandidate{
				Engineer:       c,
				DistanceMeters: estimate.DistanceMeters,
				Duration:       &duration,
				Source:         SourceProvider,
			}, nil
		}
		// Provider unavailable or erroring: fall through to haversine.
	}

	distance, err := loc.DistanceTo(site)
	if err != nil {
		return RankedCandidate{}, err
	}

	return RankedCandidate{
		Engineer:       c,
		DistanceMeters: distance,
		Source:         SourceHaversine,
	}, nil
}
