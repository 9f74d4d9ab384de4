// Package job defines the Job aggregate: a unit of field-service work to be
// performed at a site, owned by an agency. The aggregate enforces the
// assignment invariant (an engineer reference exists if and only if the
// status is at or past assigned) and the status state machine
//
//	pending -> assigned -> accepted -> travelling -> onsite -> completed
//
// with cancelled reachable from any non-terminal state, and the compensating
// reverse transition assigned -> pending used when the second half of the
// assignment saga fails.
//
// Jobs are never deleted; terminal states are marked with their timestamps.
// All mutation happens through validated methods on the aggregate.
package job
