// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The upload and conversation controllers share one *Session, which holds
// every piece of mutable state behind a single mutex. Guards are checked and
// set in the same critical section that hands out a task, so concurrent
// callers are rejected rather than queued.
package services
