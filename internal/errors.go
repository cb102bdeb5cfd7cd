package internal

import "errors"

// Error taxonomy for a single invocation. Everything here is terminal for
// the current run; only ErrAssumeRole is "soft" in the sense that the
// caller still materializes a deterministic (empty) credential set after
// clearing the cached session.
var (
	// ErrMissingDependency means the bastion profile's shared config or
	// credentials could not be loaded at all.
	ErrMissingDependency = errors.New("bastion profile credentials unavailable")

	ErrInvalidAccountID = errors.New("account id must be exactly 12 digits")
	ErrMissingRole      = errors.New("no role provided")
	ErrMissingRegion    = errors.New("no region provided")
	ErrMissingMFACode   = errors.New("no MFA code provided")

	// Mint-attempt failures. The prior session, if any, is left untouched.
	ErrMFADeviceLookup = errors.New("MFA device lookup failed")
	ErrSessionToken    = errors.New("session token request failed")

	// ErrAssumeRole invalidates the cached session so the next invocation
	// re-authenticates from scratch.
	ErrAssumeRole = errors.New("role assumption failed")
)
