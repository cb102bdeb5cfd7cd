package internal

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Client talks to AWS IAM and STS. Calls before the MFA challenge run
// under the long-lived bastion profile; the role assumption runs under the
// minted session's static credentials.
type Client struct {
	Profile string
	Region  string
}

var (
	_ SessionAPI = (*Client)(nil)
	_ RoleAPI    = (*Client)(nil)
)

func (c *Client) load(ctx context.Context) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(c.Profile),
		config.WithRegion(c.Region),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("%w: %v", ErrMissingDependency, err)
	}
	return cfg, nil
}

// userNameFromARN extracts the user name from a plain IAM user ARN like
// arn:aws:iam::123456789012:user/alice. Assumed-role and federated ARNs
// don't match and report false.
func userNameFromARN(arn string) (string, bool) {
	if i := strings.LastIndex(arn, ":user/"); i >= 0 {
		return arn[i+len(":user/"):], true
	}
	return "", false
}

// Username returns the IAM user name of the bastion profile's caller.
// GetCallerIdentity works without any IAM permissions, so try that first
// and fall back to GetUser for callers whose ARN is not a plain user.
func (c *Client) Username(ctx context.Context) (string, error) {
	cfg, err := c.load(ctx)
	if err != nil {
		return "", err
	}

	ident, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err == nil && ident.Arn != nil {
		if name, ok := userNameFromARN(*ident.Arn); ok {
			return name, nil
		}
	}

	out, err := iam.NewFromConfig(cfg).GetUser(ctx, &iam.GetUserInput{})
	if err != nil {
		return "", fmt.Errorf("failed to identify caller: %w", err)
	}
	if out.User == nil || out.User.UserName == nil {
		return "", fmt.Errorf("caller has no IAM user name")
	}
	return *out.User.UserName, nil
}

// FirstMFADevice returns the serial number of the calling user's first
// registered MFA device. Omitting UserName makes IAM infer the caller, so
// identity and device lookup collapse into one round trip. Devices beyond
// the first are ignored; users with multiple devices must register the one
// they intend to use first.
func (c *Client) FirstMFADevice(ctx context.Context) (string, error) {
	cfg, err := c.load(ctx)
	if err != nil {
		return "", err
	}

	out, err := iam.NewFromConfig(cfg).ListMFADevices(ctx, &iam.ListMFADevicesInput{
		MaxItems: aws.Int32(1),
	})
	if err != nil {
		return "", fmt.Errorf("failed to list MFA devices: %w", err)
	}
	if len(out.MFADevices) == 0 {
		return "", fmt.Errorf("no MFA device registered")
	}
	return *out.MFADevices[0].SerialNumber, nil
}

// SessionToken exchanges the MFA code for a long-lived session credential
// under the bastion profile.
func (c *Client) SessionToken(ctx context.Context, serial, code string, durationSeconds int32) (Credentials, error) {
	cfg, err := c.load(ctx)
	if err != nil {
		return Credentials{}, err
	}

	out, err := sts.NewFromConfig(cfg).GetSessionToken(ctx, &sts.GetSessionTokenInput{
		SerialNumber:    aws.String(serial),
		TokenCode:       aws.String(code),
		DurationSeconds: aws.Int32(durationSeconds),
	})
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{
		AccessKeyID:     *out.Credentials.AccessKeyId,
		SecretAccessKey: *out.Credentials.SecretAccessKey,
		SessionToken:    *out.Credentials.SessionToken,
	}, nil
}

// AssumeRole requests the short-lived role credential under the session's
// static credentials rather than the bastion profile.
func (c *Client) AssumeRole(ctx context.Context, session Session, roleArn, externalID, sessionName string, durationSeconds int32) (Credentials, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			session.AccessKeyID,
			session.SecretAccessKey,
			session.SessionToken,
		)),
	)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrMissingDependency, err)
	}

	out, err := sts.NewFromConfig(cfg).AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleArn),
		ExternalId:      aws.String(externalID),
		RoleSessionName: aws.String(sessionName),
		DurationSeconds: aws.Int32(durationSeconds),
	})
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{
		AccessKeyID:     *out.Credentials.AccessKeyId,
		SecretAccessKey: *out.Credentials.SecretAccessKey,
		SessionToken:    *out.Credentials.SessionToken,
	}, nil
}

// CallerIdentity returns the raw caller identity for the whoami command.
func (c *Client) CallerIdentity(ctx context.Context) (account, arn, userID string, err error) {
	cfg, err := c.load(ctx)
	if err != nil {
		return "", "", "", err
	}

	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", "", "", fmt.Errorf("failed to get caller identity: %w", err)
	}
	return aws.ToString(out.Account), aws.ToString(out.Arn), aws.ToString(out.UserId), nil
}

// ProfileRegion returns the region the SDK resolves for the given shared
// config profile, or "" when none is configured.
func ProfileRegion(ctx context.Context, profile string) string {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithSharedConfigProfile(profile))
	if err != nil {
		return ""
	}
	return cfg.Region
}
