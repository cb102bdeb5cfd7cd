package internal

import (
	"context"
	"fmt"
	"time"
)

// SafetyMargin is shaved off the session timeout when deciding expiry so a
// session is never reused moments before the provider would reject it.
const SafetyMargin int64 = 200

// SessionAPI is the slice of the identity provider the lifecycle manager
// needs to mint a session. Implemented by Client; tests use fakes.
type SessionAPI interface {
	// FirstMFADevice returns the serial number of the calling identity's
	// first registered MFA device.
	FirstMFADevice(ctx context.Context) (string, error)
	SessionToken(ctx context.Context, serial, code string, durationSeconds int32) (Credentials, error)
}

// Lifecycle decides, on every invocation, whether the cached session can be
// reused or a fresh MFA challenge is required. It owns the Session; callers
// only ever get value copies.
type Lifecycle struct {
	API     SessionAPI
	Now     func() time.Time
	Timeout int64 // session duration in seconds
}

// Expired reports whether the session is past its safety threshold. An
// absent session has StartedAt 0, which makes the elapsed time huge, so
// NoSession and Expired collapse into the same answer.
func (l *Lifecycle) Expired(s Session) bool {
	elapsed := l.Now().Unix() - s.StartedAt
	return l.Timeout-SafetyMargin < elapsed
}

// Ensure returns a usable session, minting a new one through an MFA
// challenge only when the prior session is absent or expired. code is
// invoked only on the mint path, so a valid cached session never triggers
// an MFA prompt or a network call. The returned bool reports whether a
// mint happened.
//
// Mint failures leave the prior session untouched; the caller simply keeps
// exporting what it already had.
func (l *Lifecycle) Ensure(ctx context.Context, prior Session, code func() (string, error)) (Session, bool, error) {
	if prior.Complete() && !l.Expired(prior) {
		return prior, false, nil
	}

	mfa, err := code()
	if err != nil {
		return Session{}, false, err
	}

	serial, err := l.API.FirstMFADevice(ctx)
	if err != nil {
		return Session{}, false, fmt.Errorf("%w: %w", ErrMFADeviceLookup, err)
	}

	creds, err := l.API.SessionToken(ctx, serial, mfa, int32(l.Timeout))
	if err != nil {
		return Session{}, false, fmt.Errorf("%w: %w", ErrSessionToken, err)
	}

	return Session{
		StartedAt:       l.Now().Unix(),
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
	}, true, nil
}

// Invalidate resets the session to the no-session state. Called after a
// role assumption failure, since that may mean the session itself is stale
// or revoked server-side.
func (s Session) Invalidate() Session {
	return Session{}
}
