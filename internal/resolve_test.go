package internal

import (
	"errors"
	"strings"
	"testing"
)

// fakePrompter answers prompts by their leading word ("Account", "Role",
// "Region") and counts how often it is consulted.
type fakePrompter struct {
	answers     map[string]string
	masked      string
	askCalls    int
	maskedCalls int
}

func (p *fakePrompter) Ask(prompt, defaultValue string) (string, error) {
	p.askCalls++
	key := strings.Fields(prompt)[0]
	if v, ok := p.answers[key]; ok {
		return v, nil
	}
	// Empty answer means the user hit enter; the prompt default applies.
	return "", nil
}

func (p *fakePrompter) AskMasked(prompt string) (string, error) {
	p.maskedCalls++
	return p.masked, nil
}

func TestResolverAccount(t *testing.T) {
	t.Run("explicit argument wins", func(t *testing.T) {
		p := &fakePrompter{answers: map[string]string{"Account": "ignored"}}
		r := &Resolver{Prompter: p, Getenv: envMap(nil)}
		got, err := r.Account("prod")
		if err != nil || got != "prod" {
			t.Fatalf("Account(prod) = %q, %v", got, err)
		}
		if p.askCalls != 0 {
			t.Error("explicit argument should not prompt")
		}
	})

	t.Run("prompt answer", func(t *testing.T) {
		p := &fakePrompter{answers: map[string]string{"Account": "staging"}}
		r := &Resolver{Prompter: p, Getenv: envMap(nil)}
		got, _ := r.Account("")
		if got != "staging" {
			t.Errorf("Account = %q, want staging", got)
		}
	})

	t.Run("empty prompt answer falls to default", func(t *testing.T) {
		r := &Resolver{Prompter: &fakePrompter{}, Getenv: envMap(nil)}
		got, _ := r.Account("")
		if got != "default" {
			t.Errorf("Account = %q, want default", got)
		}
	})

	t.Run("non-interactive always resolves", func(t *testing.T) {
		r := &Resolver{Getenv: envMap(nil)}
		got, err := r.Account("")
		if err != nil || got != "default" {
			t.Errorf("Account = %q, %v, want default", got, err)
		}
	})
}

func TestResolverRole(t *testing.T) {
	t.Run("explicit argument wins", func(t *testing.T) {
		r := &Resolver{Getenv: envMap(nil)}
		got, err := r.Role("admin")
		if err != nil || got != "admin" {
			t.Fatalf("Role(admin) = %q, %v", got, err)
		}
	})

	t.Run("empty prompt answer falls to read", func(t *testing.T) {
		r := &Resolver{Prompter: &fakePrompter{}, Getenv: envMap(nil)}
		got, _ := r.Role("")
		if got != "read" {
			t.Errorf("Role = %q, want read", got)
		}
	})

	t.Run("non-interactive fails", func(t *testing.T) {
		r := &Resolver{Getenv: envMap(nil)}
		if _, err := r.Role(""); !errors.Is(err, ErrMissingRole) {
			t.Errorf("error = %v, want ErrMissingRole", err)
		}
	})
}

func TestResolverRegionPrecedence(t *testing.T) {
	env := map[string]string{
		EnvRegion:        "eu-west-1",
		EnvDefaultRegion: "eu-west-2",
	}

	t.Run("explicit argument beats environment", func(t *testing.T) {
		r := &Resolver{Getenv: envMap(env)}
		got, err := r.Region("ap-southeast-1")
		if err != nil || got != "ap-southeast-1" {
			t.Fatalf("Region = %q, %v", got, err)
		}
	})

	t.Run("AWS_REGION beats AWS_DEFAULT_REGION", func(t *testing.T) {
		r := &Resolver{Getenv: envMap(env)}
		got, _ := r.Region("")
		if got != "eu-west-1" {
			t.Errorf("Region = %q, want eu-west-1", got)
		}
	})

	t.Run("AWS_DEFAULT_REGION next", func(t *testing.T) {
		r := &Resolver{Getenv: envMap(map[string]string{EnvDefaultRegion: "eu-west-2"})}
		got, _ := r.Region("")
		if got != "eu-west-2" {
			t.Errorf("Region = %q, want eu-west-2", got)
		}
	})

	t.Run("config region next", func(t *testing.T) {
		r := &Resolver{Getenv: envMap(nil), ConfigRegion: "us-west-2"}
		got, _ := r.Region("")
		if got != "us-west-2" {
			t.Errorf("Region = %q, want us-west-2", got)
		}
	})

	t.Run("profile region next", func(t *testing.T) {
		r := &Resolver{Getenv: envMap(nil), ProfileRegion: func() string { return "ca-central-1" }}
		got, _ := r.Region("")
		if got != "ca-central-1" {
			t.Errorf("Region = %q, want ca-central-1", got)
		}
	})

	t.Run("prompt default last", func(t *testing.T) {
		r := &Resolver{Getenv: envMap(nil), Prompter: &fakePrompter{}}
		got, _ := r.Region("")
		if got != "us-east-1" {
			t.Errorf("Region = %q, want us-east-1", got)
		}
	})

	t.Run("non-interactive fails when chain is empty", func(t *testing.T) {
		r := &Resolver{Getenv: envMap(nil)}
		if _, err := r.Region(""); !errors.Is(err, ErrMissingRegion) {
			t.Errorf("error = %v, want ErrMissingRegion", err)
		}
	})
}

func TestResolverMFACode(t *testing.T) {
	t.Run("lazy, not consulted until called", func(t *testing.T) {
		p := &fakePrompter{masked: "123456"}
		r := &Resolver{Prompter: p, Getenv: envMap(nil)}

		code := r.MFACode("")
		if p.maskedCalls != 0 {
			t.Fatal("MFACode should not prompt before being invoked")
		}
		got, err := code()
		if err != nil || got != "123456" {
			t.Fatalf("code() = %q, %v", got, err)
		}
		if p.maskedCalls != 1 {
			t.Errorf("maskedCalls = %d, want 1", p.maskedCalls)
		}
	})

	t.Run("explicit argument skips prompt", func(t *testing.T) {
		p := &fakePrompter{masked: "ignored"}
		r := &Resolver{Prompter: p, Getenv: envMap(nil)}
		got, err := r.MFACode("654321")()
		if err != nil || got != "654321" {
			t.Fatalf("code() = %q, %v", got, err)
		}
		if p.maskedCalls != 0 {
			t.Error("explicit code should not prompt")
		}
	})

	t.Run("non-interactive fails", func(t *testing.T) {
		r := &Resolver{Getenv: envMap(nil)}
		if _, err := r.MFACode("")(); !errors.Is(err, ErrMissingMFACode) {
			t.Errorf("error = %v, want ErrMissingMFACode", err)
		}
	})

	t.Run("empty masked answer fails", func(t *testing.T) {
		r := &Resolver{Prompter: &fakePrompter{masked: "  "}, Getenv: envMap(nil)}
		if _, err := r.MFACode("")(); !errors.Is(err, ErrMissingMFACode) {
			t.Errorf("error = %v, want ErrMissingMFACode", err)
		}
	})
}
