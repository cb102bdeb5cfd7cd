package cmd

import (
	"fmt"

	"github.com/chukul/assumectl/internal"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Emit export statements that reset every managed variable",
	Long: `Print export statements setting every assumectl-managed variable to the
empty string, wiping both the cached session and the role credentials from
the parent shell.`,
	Example: `  eval $(assumectl clear)`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(internal.RenderExports(internal.Materialize(internal.State{})))
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
