// Package engineer defines the Engineer aggregate: a field technician
// belonging to an agency, with availability, skill and location attributes.
//
// The availability invariant the dispatch core relies on: an engineer is
// on_job for exactly the duration it is the assigned engineer of some
// non-terminal job, and never of two such jobs at once. The aggregate
// exposes only the validated transitions MarkOnJob and Release; the storage
// adapter enforces the same predicate atomically at write time.
package engineer
