package smartnurse

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrInvariant indicates the turn log was mutated outside a valid
	// reveal window. Programmer error; never shown to a user.
	ErrInvariant = errors.New("invariant violation")

	// ErrConcurrentReveal indicates a reveal was started while another
	// one was still active. Controller bug; fail fast.
	ErrConcurrentReveal = errors.New("reveal already in progress")

	// ErrRevealCancelled indicates Cancel stopped an animation before
	// the full text was revealed.
	ErrRevealCancelled = errors.New("reveal cancelled")

	// ErrServiceUnavailable indicates the triage service could not be
	// reached at the transport level.
	ErrServiceUnavailable = errors.New("triage service unavailable")

	// ErrMalformedResponse indicates a success response whose body is
	// missing the diagnosis entirely.
	ErrMalformedResponse = errors.New("malformed triage response")
)
