package cmd

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// readMaskedLine reads a line in raw mode, echoing asterisks. Prompt and
// echo go to stderr so stdout stays safe to eval.
func readMaskedLine(prompt string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	var value string
	buf := make([]byte, 1)

	oldState, err := term.MakeRaw(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to set terminal mode: %w", err)
	}
	defer term.Restore(int(syscall.Stdin), oldState)

	for {
		if _, err := syscall.Read(syscall.Stdin, buf); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		char := buf[0]

		if char == 13 || char == 10 { // Enter
			fmt.Fprint(os.Stderr, "\r\n")
			break
		} else if char == 127 || char == 8 { // Backspace
			if len(value) > 0 {
				value = value[:len(value)-1]
				fmt.Fprint(os.Stderr, "\b \b")
			}
		} else if char == 3 { // Ctrl-C
			fmt.Fprint(os.Stderr, "\r\n")
			return "", fmt.Errorf("cancelled")
		} else if char >= 32 && char <= 126 { // Printable characters
			value += string(char)
			fmt.Fprint(os.Stderr, "*")
		}
	}

	return strings.TrimSpace(value), nil
}
