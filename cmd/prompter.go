package cmd

import (
	"context"

	"github.com/chukul/assumectl/internal"
	"github.com/chukul/assumectl/internal/ui"
)

// terminalPrompter backs input resolution with the interactive UI. All
// rendering goes to stderr so eval'd stdout stays clean.
type terminalPrompter struct{}

func (p *terminalPrompter) Ask(prompt, defaultValue string) (string, error) {
	return ui.GetInput(prompt, defaultValue, false)
}

func (p *terminalPrompter) AskMasked(prompt string) (string, error) {
	return readMaskedLine(prompt)
}

// spinSessionAPI and spinRoleAPI overlay a spinner on the blocking
// provider calls when running interactively. The MFA prompt always happens
// before either call, so the spinner never fights an input widget.

type spinSessionAPI struct {
	inner internal.SessionAPI
}

func (s spinSessionAPI) FirstMFADevice(ctx context.Context) (string, error) {
	res, err := ui.Spin("Looking up MFA device...", func() (any, error) {
		return s.inner.FirstMFADevice(ctx)
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

func (s spinSessionAPI) SessionToken(ctx context.Context, serial, code string, durationSeconds int32) (internal.Credentials, error) {
	res, err := ui.Spin("Requesting session token...", func() (any, error) {
		return s.inner.SessionToken(ctx, serial, code, durationSeconds)
	})
	if err != nil {
		return internal.Credentials{}, err
	}
	return res.(internal.Credentials), nil
}

type spinRoleAPI struct {
	inner internal.RoleAPI
}

func (s spinRoleAPI) AssumeRole(ctx context.Context, session internal.Session, roleArn, externalID, sessionName string, durationSeconds int32) (internal.Credentials, error) {
	res, err := ui.Spin("Assuming role...", func() (any, error) {
		return s.inner.AssumeRole(ctx, session, roleArn, externalID, sessionName, durationSeconds)
	})
	if err != nil {
		return internal.Credentials{}, err
	}
	return res.(internal.Credentials), nil
}
