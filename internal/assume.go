package internal

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// RoleAPI is the single provider operation the assumption layer needs.
// The session is passed by value: this layer only ever borrows it.
type RoleAPI interface {
	AssumeRole(ctx context.Context, session Session, roleArn, externalID, sessionName string, durationSeconds int32) (Credentials, error)
}

// Assumer layers a short-lived role credential on top of a valid session.
type Assumer struct {
	API     RoleAPI
	Now     func() time.Time
	Timeout int64 // role session duration in seconds
}

// RoleARN builds the target role ARN from a validated account id and role
// name.
func RoleARN(accountID, role string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, role)
}

// Assume requests the role credential. The external id is set to the
// account id to guard against confused-deputy reuse of the role, and the
// session name is the current unix timestamp so concurrent assumed-role
// sessions stay distinguishable in CloudTrail.
//
// A provider error comes back wrapped in ErrAssumeRole; the caller is
// expected to invalidate the outer session and still emit output.
func (a *Assumer) Assume(ctx context.Context, sess Session, in ResolvedInputs) (RoleCredential, error) {
	sessionName := strconv.FormatInt(a.Now().Unix(), 10)

	creds, err := a.API.AssumeRole(ctx, sess, RoleARN(in.AccountID, in.Role), in.AccountID, sessionName, int32(a.Timeout))
	if err != nil {
		return RoleCredential{}, fmt.Errorf("%w: %v", ErrAssumeRole, err)
	}

	return RoleCredential{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		AccountID:       in.AccountID,
		AccountName:     in.AccountName,
		Role:            in.Role,
	}, nil
}
