package internal

import (
	"context"
	"errors"
	"time"
)

// Inputs are the raw positional arguments, any of which may be empty.
type Inputs struct {
	Account string
	Role    string
	MFACode string
	Region  string
}

// Options wires the pipeline together. The cmd layer fills it with the
// real AWS client, terminal prompter and wall clock; tests inject fakes
// for all three.
type Options struct {
	Inputs   Inputs
	Config   Config            // already Resolved
	Accounts map[string]string // alias lookup table

	Prompter      Prompter
	Getenv        func(string) string
	Now           func() time.Time
	ProfileRegion func() string

	// OnResolved, when non-nil, observes the resolved inputs before any
	// provider call is made. The CLI uses it to pin the client's region.
	OnResolved func(ResolvedInputs)

	SessionAPI SessionAPI
	RoleAPI    RoleAPI
}

// Result carries the materialized state plus what happened along the way.
type Result struct {
	State    State
	Resolved ResolvedInputs
	Minted   bool // a fresh MFA challenge was performed
}

// Run executes one invocation of the credential pipeline: resolve inputs,
// ensure a live session, assume the role, and fold everything into the
// next environment state.
//
// Input validation and mint failures return a nil Result: nothing is
// exported and any prior session in the environment stays untouched. A
// role assumption failure is soft: the error (wrapping ErrAssumeRole)
// comes back alongside a Result whose session is invalidated and whose
// role fields are empty, so the caller can still reset the parent shell
// deterministically.
func Run(ctx context.Context, opts Options) (*Result, error) {
	resolver := &Resolver{
		Prompter:      opts.Prompter,
		Getenv:        opts.Getenv,
		ConfigRegion:  opts.Config.Region,
		ProfileRegion: opts.ProfileRegion,
	}

	alias, err := resolver.Account(opts.Inputs.Account)
	if err != nil {
		return nil, err
	}
	accountID, err := ResolveAccount(alias, opts.Accounts)
	if err != nil {
		return nil, err
	}
	role, err := resolver.Role(opts.Inputs.Role)
	if err != nil {
		return nil, err
	}
	region, err := resolver.Region(opts.Inputs.Region)
	if err != nil {
		return nil, err
	}

	resolved := ResolvedInputs{
		AccountName: alias,
		AccountID:   accountID,
		Role:        role,
		Region:      region,
	}
	if opts.OnResolved != nil {
		opts.OnResolved(resolved)
	}

	lifecycle := &Lifecycle{
		API:     opts.SessionAPI,
		Now:     opts.Now,
		Timeout: opts.Config.SessionTimeout,
	}

	prior := PriorSession(opts.Getenv)
	session, minted, err := lifecycle.Ensure(ctx, prior, resolver.MFACode(opts.Inputs.MFACode))
	if err != nil {
		return nil, err
	}

	assumer := &Assumer{
		API:     opts.RoleAPI,
		Now:     opts.Now,
		Timeout: opts.Config.RoleSessionTimeout,
	}

	result := &Result{
		Resolved: resolved,
		Minted:   minted,
		State: State{
			Region:  region,
			Profile: opts.Config.Profile,
			Session: session,
		},
	}

	roleCred, err := assumer.Assume(ctx, session, resolved)
	if err != nil {
		if errors.Is(err, ErrAssumeRole) {
			result.State.Session = session.Invalidate()
			return result, err
		}
		return nil, err
	}

	result.State.Role = roleCred
	return result, nil
}
