package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/chukul/assumectl/internal"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the caller identity of the bastion profile",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, _ := loadSetup()
		client := &internal.Client{Profile: cfg.Profile}

		account, arn, userID, err := client.CallerIdentity(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Profile:  %s\n", cfg.Profile)
		fmt.Printf("Account:  %s\n", account)
		fmt.Printf("Arn:      %s\n", arn)
		fmt.Printf("UserId:   %s\n", userID)

		// The user name needs an extra lookup for non-user ARNs; a caller
		// without iam:GetUser still gets the identity above.
		if user, err := client.Username(ctx); err == nil {
			fmt.Printf("User:     %s\n", user)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
