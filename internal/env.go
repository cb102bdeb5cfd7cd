package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Variable names produced by every invocation. AWS_SECURITY_TOKEN and
// AWS_SESSION_SECURITY_TOKEN are legacy duplicates kept for tools that
// still read the pre-SDK-v2 name.
const (
	EnvRegion        = "AWS_REGION"
	EnvDefaultRegion = "AWS_DEFAULT_REGION"

	EnvAccessKey     = "AWS_ACCESS_KEY_ID"
	EnvSecretKey     = "AWS_SECRET_ACCESS_KEY"
	EnvSessionToken  = "AWS_SESSION_TOKEN"
	EnvSecurityToken = "AWS_SECURITY_TOKEN"

	EnvAccountID   = "AWS_ACCOUNT_ID"
	EnvAccountName = "AWS_ACCOUNT_NAME"
	EnvAccountRole = "AWS_ACCOUNT_ROLE"

	EnvSessionAccessKey     = "AWS_SESSION_ACCESS_KEY_ID"
	EnvSessionSecretKey     = "AWS_SESSION_SECRET_ACCESS_KEY"
	EnvSessionSessionToken  = "AWS_SESSION_SESSION_TOKEN"
	EnvSessionSecurityToken = "AWS_SESSION_SECURITY_TOKEN"
	EnvSessionStart         = "AWS_SESSION_START"

	EnvEnvironment = "ENVIRONMENT"
	EnvProfileEcho = "AWS_PROFILE_ASSUME_ROLE"
)

// Read-only override inputs.
const (
	EnvProfileOverride        = "AWS_PROFILE_ASSUME_ROLE"
	EnvSessionTimeoutOverride = "SESSION_TIMEOUT"
	EnvRoleTimeoutOverride    = "ROLE_SESSION_TIMEOUT"
)

// ExportOrder fixes the emission order so eval output is stable and
// diffable between invocations.
var ExportOrder = []string{
	EnvRegion,
	EnvDefaultRegion,
	EnvAccessKey,
	EnvSecretKey,
	EnvSessionToken,
	EnvSecurityToken,
	EnvAccountID,
	EnvAccountName,
	EnvAccountRole,
	EnvSessionAccessKey,
	EnvSessionSecretKey,
	EnvSessionSessionToken,
	EnvSessionSecurityToken,
	EnvSessionStart,
	EnvEnvironment,
	EnvProfileEcho,
}

// State is the materialized outcome of one invocation: the active region,
// the (possibly invalidated) session, and the (possibly empty) role
// credential.
type State struct {
	Region  string
	Profile string
	Session Session
	Role    RoleCredential
}

// PriorSession reconstructs the cached session from the environment the
// previous invocation exported. Garbage in the start marker reads as no
// session at all.
func PriorSession(getenv func(string) string) Session {
	started, err := strconv.ParseInt(getenv(EnvSessionStart), 10, 64)
	if err != nil || started < 0 {
		started = 0
	}
	return Session{
		StartedAt:       started,
		AccessKeyID:     getenv(EnvSessionAccessKey),
		SecretAccessKey: getenv(EnvSessionSecretKey),
		SessionToken:    getenv(EnvSessionSessionToken),
	}
}

// Materialize flattens the final state into the full variable map. Every
// key in ExportOrder is always present so a failed run still resets the
// parent shell deterministically instead of leaving stale values.
func Materialize(st State) map[string]string {
	start := ""
	if st.Session.StartedAt > 0 {
		start = strconv.FormatInt(st.Session.StartedAt, 10)
	}
	return map[string]string{
		EnvRegion:        st.Region,
		EnvDefaultRegion: st.Region,

		EnvAccessKey:     st.Role.AccessKeyID,
		EnvSecretKey:     st.Role.SecretAccessKey,
		EnvSessionToken:  st.Role.SessionToken,
		EnvSecurityToken: st.Role.SessionToken,

		EnvAccountID:   st.Role.AccountID,
		EnvAccountName: st.Role.AccountName,
		EnvAccountRole: st.Role.Role,

		EnvSessionAccessKey:     st.Session.AccessKeyID,
		EnvSessionSecretKey:     st.Session.SecretAccessKey,
		EnvSessionSessionToken:  st.Session.SessionToken,
		EnvSessionSecurityToken: st.Session.SessionToken,
		EnvSessionStart:         start,

		EnvEnvironment: st.Role.AccountName,
		EnvProfileEcho: st.Profile,
	}
}

// RenderExports emits one shell export statement per key, newline
// separated, for the parent shell to eval.
func RenderExports(vars map[string]string) string {
	var b strings.Builder
	for _, k := range ExportOrder {
		fmt.Fprintf(&b, "export %s=\"%s\"\n", k, vars[k])
	}
	return b.String()
}

// Apply sets every variable in the current process's environment. Used in
// direct mode before handing off to a child command.
func Apply(vars map[string]string) error {
	for _, k := range ExportOrder {
		if err := os.Setenv(k, vars[k]); err != nil {
			return err
		}
	}
	return nil
}
