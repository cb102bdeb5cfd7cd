package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/chukul/assumectl/internal"
	"github.com/chukul/assumectl/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagProfile string
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "assumectl [account] [role] [mfa-code] [region]",
	Short: "Exchange a bastion profile and an MFA code for role-scoped AWS credentials",
	Long: `assumectl mints a long-lived MFA session from your bastion account and
layers a short-lived role assumption on top of it. The session is cached in
the calling shell's environment, so repeated runs only re-prompt for MFA
after the session expires (12 hours by default).`,
	Example: `  # First run of the day: performs the MFA challenge
  eval $(assumectl prod admin 123456)

  # Later runs reuse the cached session, no MFA prompt
  eval $(assumectl prod read)

  # Run one command with the credentials instead of mutating the shell
  assumectl prod admin -- aws s3 ls`,
	Args: func(cmd *cobra.Command, args []string) error {
		n := len(args)
		if d := cmd.ArgsLenAtDash(); d >= 0 {
			n = d
		}
		if n > 4 {
			return fmt.Errorf("accepts at most 4 positional arguments, received %d", n)
		}
		return nil
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Check for updates on every command (non-blocking, stderr only)
		internal.CheckForUpdates()
	},
	Run: runAssume,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Bastion AWS CLI profile (overrides config and AWS_PROFILE_ASSUME_ROLE)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default ~/.assumectl/config.yaml)")
}

func runAssume(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	positional := args
	var execArgs []string
	if d := cmd.ArgsLenAtDash(); d >= 0 {
		positional = args[:d]
		execArgs = args[d:]
	}

	var in internal.Inputs
	for i, v := range positional {
		switch i {
		case 0:
			in.Account = v
		case 1:
			in.Role = v
		case 2:
			in.MFACode = v
		case 3:
			in.Region = v
		}
	}

	cfg, table := loadSetup()
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	// Known aliases get an interactive picker before the generic
	// resolution chain runs.
	if in.Account == "" && interactive && len(table) > 0 {
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)
		if picked, err := ui.Select("Account", names); err == nil {
			in.Account = picked
		}
	}

	var prompter internal.Prompter
	if interactive {
		prompter = &terminalPrompter{}
	}

	client := &internal.Client{Profile: cfg.Profile}
	var sessionAPI internal.SessionAPI = client
	var roleAPI internal.RoleAPI = client
	if interactive {
		sessionAPI = spinSessionAPI{client}
		roleAPI = spinRoleAPI{client}
	}

	result, err := internal.Run(ctx, internal.Options{
		Inputs:   in,
		Config:   cfg,
		Accounts: table,
		Prompter: prompter,
		Getenv:   os.Getenv,
		Now:      time.Now,
		ProfileRegion: func() string {
			return internal.ProfileRegion(ctx, cfg.Profile)
		},
		OnResolved: func(r internal.ResolvedInputs) {
			client.Region = r.Region
		},
		SessionAPI: sessionAPI,
		RoleAPI:    roleAPI,
	})
	if result == nil {
		// Hard failure: nothing is exported, prior environment state is
		// left untouched.
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		fmt.Fprintln(os.Stderr, "   Cached session cleared. The next run will ask for MFA again.")
	} else if result.Minted {
		until := time.Unix(result.State.Session.StartedAt+cfg.SessionTimeout, 0)
		fmt.Fprintf(os.Stderr, "✅ New session valid until %s\n", until.Local().Format("2006-01-02 15:04:05"))
	}

	vars := internal.Materialize(result.State)

	if len(execArgs) > 0 {
		if err != nil {
			os.Exit(1)
		}
		runChild(ctx, vars, execArgs)
		return
	}

	fmt.Print(internal.RenderExports(vars))
	if err != nil {
		os.Exit(1)
	}
}

// runChild applies the materialized environment directly and hands off to
// the requested command (direct mode).
func runChild(ctx context.Context, vars map[string]string, argv []string) {
	if err := internal.Apply(vars); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to set environment: %v\n", err)
		os.Exit(1)
	}

	child := exec.CommandContext(ctx, argv[0], argv[1:]...)
	child.Env = os.Environ()
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	if err := child.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

// loadSetup reads the config file and the account alias table, applying
// environment and flag overrides.
func loadSetup() (internal.Config, map[string]string) {
	path := flagConfig
	if path == "" {
		path = internal.DefaultConfigPath()
	}

	fileCfg, err := internal.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	cfg := fileCfg.Resolved(os.Getenv)
	if flagProfile != "" {
		cfg.Profile = flagProfile
	}

	table, err := internal.LoadAccounts(cfg.AccountsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	return cfg, table
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
