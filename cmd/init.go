package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate shell integration code",
	Long:  `Generate shell integration code to simplify assumectl usage. Add the output to your shell config file.`,
	Run: func(cmd *cobra.Command, args []string) {
		shell := detectShell()

		fmt.Printf("# assumectl shell integration for %s\n", shell)
		fmt.Println("# Add this to your shell config file:")
		fmt.Println("# - Bash: ~/.bashrc or ~/.bash_profile")
		fmt.Println("# - Zsh: ~/.zshrc")
		fmt.Println("# - Fish: ~/.config/fish/config.fish")
		fmt.Println()

		switch shell {
		case "fish":
			printFishIntegration()
		default:
			printBashZshIntegration()
		}
	},
}

func detectShell() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		if runtime.GOOS == "windows" {
			return "powershell"
		}
		return "bash"
	}

	// Extract shell name from path
	for i := len(shell) - 1; i >= 0; i-- {
		if shell[i] == '/' || shell[i] == '\\' {
			return shell[i+1:]
		}
	}
	return shell
}

func printBashZshIntegration() {
	fmt.Println(`# Assume a role - usage: assume <account> <role> [mfa-code] [region]
assume() {
  eval "$(assumectl "$@")"
}

# Drop the credentials from the current shell
assume-clear() {
  eval "$(assumectl clear)"
}

# Aliases for common commands
alias ast='assumectl status'
alias awho='assumectl whoami'`)
}

func printFishIntegration() {
	fmt.Println(`# Assume a role - usage: assume <account> <role> [mfa-code] [region]
function assume
    eval (assumectl $argv)
end

# Drop the credentials from the current shell
function assume-clear
    eval (assumectl clear)
end

# Aliases for common commands
alias ast='assumectl status'
alias awho='assumectl whoami'`)
}

func init() {
	rootCmd.AddCommand(initCmd)
}
