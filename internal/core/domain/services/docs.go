// Package services contains stateless domain services of the dispatch core.
//
// DistanceRanker orders candidate engineers for a job site by travel
// distance, asking an external road-distance provider first and falling back
// to great-circle distance when the provider is unavailable. It never
// mutates state and is safe to call concurrently without bound.
package services
