package transcript

import "context"

// Store is the keyed transcript store the orchestrator reads and writes
// through. One transcript per user key, insertion-ordered, grows
// monotonically; windowing is a read-time view, never a mutation.
//
// Implementations choose their own concurrency discipline. The orchestrator
// assumes at most one in-flight turn per user key; concurrent turns for the
// same key racing on append order is an accepted limitation.
type Store interface {
	// History returns all turns for the user key, oldest first.
	History(ctx context.Context, userKey string) ([]Turn, error)
	// Append records a new turn holding the user's message, with no answer yet.
	Append(ctx context.Context, userKey, userMessage string) error
	// Complete fills the answer on the newest unanswered turn for the user key.
	Complete(ctx context.Context, userKey, botMessage string) error
	// Exists reports whether any turns exist for the user key.
	Exists(ctx context.Context, userKey string) (bool, error)
}
