package internal

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeRoleAPI records the request it receives.
type fakeRoleAPI struct {
	creds       Credentials
	err         error
	calls       int
	gotSession  Session
	gotArn      string
	gotExternal string
	gotName     string
	gotDuration int32
}

func (f *fakeRoleAPI) AssumeRole(ctx context.Context, session Session, roleArn, externalID, sessionName string, durationSeconds int32) (Credentials, error) {
	f.calls++
	f.gotSession = session
	f.gotArn = roleArn
	f.gotExternal = externalID
	f.gotName = sessionName
	f.gotDuration = durationSeconds
	return f.creds, f.err
}

func TestRoleARN(t *testing.T) {
	got := RoleARN("123456789012", "admin")
	want := "arn:aws:iam::123456789012:role/admin"
	if got != want {
		t.Errorf("RoleARN = %q, want %q", got, want)
	}
}

func TestAssumerAssume(t *testing.T) {
	const now = 1_700_000_000
	api := &fakeRoleAPI{creds: Credentials{AccessKeyID: "RK", SecretAccessKey: "RS", SessionToken: "RT"}}
	a := &Assumer{API: api, Now: fixedClock(now), Timeout: DefaultRoleSessionTimeout}

	sess := Session{StartedAt: now - 60, AccessKeyID: "SK", SecretAccessKey: "SS", SessionToken: "ST"}
	in := ResolvedInputs{AccountName: "prod", AccountID: "123456789012", Role: "admin", Region: "us-east-1"}

	cred, err := a.Assume(context.Background(), sess, in)
	if err != nil {
		t.Fatalf("Assume failed: %v", err)
	}

	if api.gotArn != "arn:aws:iam::123456789012:role/admin" {
		t.Errorf("role arn = %q", api.gotArn)
	}
	if api.gotExternal != "123456789012" {
		t.Errorf("external id = %q, want the account id", api.gotExternal)
	}
	if api.gotName != "1700000000" {
		t.Errorf("session name = %q, want the unix timestamp", api.gotName)
	}
	if api.gotDuration != 3600 {
		t.Errorf("duration = %d, want 3600", api.gotDuration)
	}
	if api.gotSession != sess {
		t.Errorf("session passed to provider = %+v", api.gotSession)
	}

	if cred.AccessKeyID != "RK" || cred.SecretAccessKey != "RS" || cred.SessionToken != "RT" {
		t.Errorf("unexpected credentials: %+v", cred)
	}
	if cred.AccountID != "123456789012" || cred.AccountName != "prod" || cred.Role != "admin" {
		t.Errorf("unexpected identity fields: %+v", cred)
	}
}

func TestAssumerSoftFailure(t *testing.T) {
	api := &fakeRoleAPI{err: fmt.Errorf("access denied")}
	a := &Assumer{API: api, Now: fixedClock(1_700_000_000), Timeout: DefaultRoleSessionTimeout}

	cred, err := a.Assume(context.Background(), Session{}, ResolvedInputs{AccountID: "123456789012", Role: "admin"})
	if !errors.Is(err, ErrAssumeRole) {
		t.Fatalf("error = %v, want ErrAssumeRole", err)
	}
	if cred != (RoleCredential{}) {
		t.Errorf("no partial credential may be produced on failure, got %+v", cred)
	}
}
