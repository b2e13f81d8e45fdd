package cli

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// stdinIsTerminal reports whether stdin is interactive. Replaced in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm asks a yes/no question on the command's input. Anything but an
// explicit yes declines. Without a terminal and without --yes, destructive
// commands refuse rather than guess.
func confirm(cmd *cobra.Command, question string) bool {
	in := cmd.InOrStdin()
	if in == os.Stdin && !stdinIsTerminal() {
		return false
	}
	cmd.Printf("%s [y/N]: ", question)
	return isYes(readLine(bufio.NewReader(in)))
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// readAll reads a message from stdin when it is piped in.
func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
