package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

func readLine(prompt string) string {
	fmt.Print(prompt)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

// readPassword reads without echo, falling back to a plain read when stdin
// is not a terminal (piped input, tests).
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if !term.IsTerminal(int(syscall.Stdin)) {
		line, _ := stdin.ReadString('\n')
		return strings.TrimSpace(line), nil
	}
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func readYesNo(prompt string) bool {
	answer := strings.ToLower(readLine(prompt))
	return answer == "y" || answer == "yes"
}
