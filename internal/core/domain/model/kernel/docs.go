// Package kernel contains the shared value objects of the fieldops domain:
// UUID identities, geographic points with great-circle distance, and the
// ordinal skill level used by both jobs and engineers.
//
// All value objects are immutable and validate themselves on construction.
// Zero values are invalid and fail Validate, which keeps unconstructed
// objects from leaking into aggregates.
package kernel
