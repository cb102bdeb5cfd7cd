package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/chukul/assumectl/internal"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusJSON bool

type statusInfo struct {
	Account        string `json:"account"`
	AccountID      string `json:"account_id"`
	Role           string `json:"role"`
	Region         string `json:"region"`
	HasCredentials bool   `json:"has_credentials"`
	SessionStart   int64  `json:"session_start"`
	SessionActive  bool   `json:"session_active"`
	RemainingSec   int64  `json:"remaining_seconds"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session and role credentials exported into this shell",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _ := loadSetup()

		session := internal.PriorSession(os.Getenv)
		remaining := session.StartedAt + cfg.SessionTimeout - internal.SafetyMargin - time.Now().Unix()

		info := statusInfo{
			Account:        os.Getenv(internal.EnvAccountName),
			AccountID:      os.Getenv(internal.EnvAccountID),
			Role:           os.Getenv(internal.EnvAccountRole),
			Region:         os.Getenv(internal.EnvRegion),
			HasCredentials: os.Getenv(internal.EnvAccessKey) != "",
			SessionStart:   session.StartedAt,
			SessionActive:  session.Complete() && remaining > 0,
			RemainingSec:   remaining,
		}

		if statusJSON {
			out, _ := json.MarshalIndent(info, "", "  ")
			fmt.Println(string(out))
			return
		}

		if !info.SessionActive && !info.HasCredentials {
			fmt.Println("No active session in this shell.")
			fmt.Println("\n💡 Start one with:")
			fmt.Println("   eval $(assumectl <account> <role>)")
			return
		}

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		label := color.New(color.FgCyan, color.Bold).SprintFunc()

		fmt.Printf("%s %s\n", label("Account:"), orDash(info.Account))
		fmt.Printf("%s %s\n", label("Account ID:"), orDash(info.AccountID))
		fmt.Printf("%s %s\n", label("Role:"), orDash(info.Role))
		fmt.Printf("%s %s\n", label("Region:"), orDash(info.Region))

		if info.SessionActive {
			h := remaining / 3600
			m := (remaining % 3600) / 60
			started := time.Unix(session.StartedAt, 0).Local().Format("2006-01-02 15:04:05")
			fmt.Printf("%s %s (started %s, %dh%dm left)\n", label("Session:"), green("ACTIVE"), started, h, m)
		} else {
			fmt.Printf("%s %s\n", label("Session:"), yellow("EXPIRED"))
		}

		if info.HasCredentials {
			fmt.Printf("%s %s\n", label("Role credentials:"), green("present"))
		} else {
			fmt.Printf("%s %s\n", label("Role credentials:"), yellow("absent"))
		}
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format for automation")
	rootCmd.AddCommand(statusCmd)
}
