package internal

import (
	"fmt"
	"strings"
)

// Per-field prompt defaults. Power users override per call with arguments;
// these keep interactive use low-friction.
const (
	DefaultAccountName = "default"
	DefaultRole        = "read"
	DefaultRegion      = "us-east-1"
)

// Prompter supplies interactive values. The CLI backs it with a terminal
// UI on stderr; tests use canned implementations. A nil Prompter means
// non-interactive mode, where resolution must terminate in an earlier
// source or fail fast instead of blocking on a prompt.
type Prompter interface {
	Ask(prompt, defaultValue string) (string, error)
	AskMasked(prompt string) (string, error)
}

// Resolver implements the fixed per-field precedence chains:
// explicit argument → environment → config/provider defaults →
// interactive prompt → hardcoded default or a fatal sentinel error.
type Resolver struct {
	Prompter     Prompter            // nil in non-interactive mode
	Getenv       func(string) string // injected for tests
	ConfigRegion string              // region from the config file, may be empty

	// ProfileRegion looks up the SDK shared-config region for the bastion
	// profile. It is only consulted when every earlier source is empty,
	// and may be nil.
	ProfileRegion func() string
}

// Account resolves the account alias. The prompt default is "default", so
// an account always resolves.
func (r *Resolver) Account(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if r.Prompter != nil {
		v, err := r.Prompter.Ask(fmt.Sprintf("Account (%s)", DefaultAccountName), DefaultAccountName)
		if err != nil {
			return "", err
		}
		if v = strings.TrimSpace(v); v != "" {
			return v, nil
		}
	}
	return DefaultAccountName, nil
}

// Role resolves the role name, defaulting to "read" at the prompt.
func (r *Resolver) Role(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if r.Prompter != nil {
		v, err := r.Prompter.Ask(fmt.Sprintf("Role (%s)", DefaultRole), DefaultRole)
		if err != nil {
			return "", err
		}
		if v = strings.TrimSpace(v); v != "" {
			return v, nil
		}
		return DefaultRole, nil
	}
	return "", ErrMissingRole
}

// Region walks the longest chain: argument, AWS_REGION, AWS_DEFAULT_REGION,
// config file, shared-config profile region, then an interactive prompt
// defaulting to us-east-1.
func (r *Resolver) Region(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if v := r.Getenv(EnvRegion); v != "" {
		return v, nil
	}
	if v := r.Getenv(EnvDefaultRegion); v != "" {
		return v, nil
	}
	if r.ConfigRegion != "" {
		return r.ConfigRegion, nil
	}
	if r.ProfileRegion != nil {
		if v := r.ProfileRegion(); v != "" {
			return v, nil
		}
	}
	if r.Prompter != nil {
		v, err := r.Prompter.Ask(fmt.Sprintf("Region (%s)", DefaultRegion), DefaultRegion)
		if err != nil {
			return "", err
		}
		if v = strings.TrimSpace(v); v != "" {
			return v, nil
		}
		return DefaultRegion, nil
	}
	return "", ErrMissingRegion
}

// MFACode returns a lazy provider for the MFA code. The lifecycle manager
// calls it only when a new session actually has to be minted, so a live
// cached session never costs the user a prompt.
func (r *Resolver) MFACode(arg string) func() (string, error) {
	return func() (string, error) {
		if arg != "" {
			return arg, nil
		}
		if r.Prompter != nil {
			v, err := r.Prompter.AskMasked("MFA code")
			if err != nil {
				return "", err
			}
			if v = strings.TrimSpace(v); v != "" {
				return v, nil
			}
		}
		return "", ErrMissingMFACode
	}
}
