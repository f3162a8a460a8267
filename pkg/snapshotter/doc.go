// Package snapshotter orchestrates a collection run: it walks the plan's
// modules in order, invokes the right collector for every capture, and
// emits one manifest per module describing the finished snapshot.
//
// Execution is strictly sequential: one session, one command in flight at
// any time. Register reads must be scoped to one CPU at a time, so there is
// deliberately no parallelism across CPUs or modules. Cancellation is
// checked between collector invocations; a verified command failure aborts
// the whole run, leaving already-written files in place.
package snapshotter
