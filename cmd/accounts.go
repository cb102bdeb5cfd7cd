package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List known account aliases",
	Long:  `List the alias→account-id table read from the accounts file. Aliases not listed here are treated as literal 12-digit account ids.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, table := loadSetup()

		if len(table) == 0 {
			fmt.Println("📭 No account aliases found.")
			fmt.Println("\n💡 Create the accounts file, e.g.:")
			fmt.Printf("   echo '{\"prod\": \"123456789012\"}' > %s\n", cfg.AccountsFile)
			return
		}

		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("Accounts")
		fmt.Println(strings.Repeat("─", 40))
		for _, name := range names {
			fmt.Printf("%-20s %s\n", name, table[name])
		}
	},
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}
