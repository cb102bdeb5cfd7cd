package internal

// Session is the long-lived MFA-authenticated credential. It survives
// between invocations inside the calling shell's environment, so every
// field has to round-trip through flat strings.
type Session struct {
	StartedAt       int64 // unix seconds, 0 when no session exists
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// Complete reports whether the session carries everything a role
// assumption needs. Anything less counts as no session at all.
func (s Session) Complete() bool {
	return s.StartedAt > 0 && s.AccessKeyID != "" && s.SecretAccessKey != "" && s.SessionToken != ""
}

// Credentials is the raw triple returned by the identity provider.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// RoleCredential is the short-lived credential scoped to one account and
// role. It is derived fresh on every invocation and never cached.
type RoleCredential struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	AccountID       string
	AccountName     string
	Role            string
}

// ResolvedInputs is the fully resolved input tuple. The MFA code is
// deliberately absent: it is resolved lazily, only when the lifecycle
// manager decides a new session must be minted.
type ResolvedInputs struct {
	AccountName string // alias as supplied by the user
	AccountID   string // strict 12-digit id
	Role        string
	Region      string
}
