package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"
)

// Output mode helpers. Agents piping petcli get JSON without asking for it;
// people at a terminal get styled text.

func isTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func hasJSONPreference(args []string) bool {
	return slices.ContainsFunc(args, func(arg string) bool {
		return arg == "--json" || strings.HasPrefix(arg, "--json=")
	})
}

func hasHelpRequest(args []string) bool {
	return slices.Contains(args, "-h") || slices.Contains(args, "--help")
}

// shouldAutoJSON reports whether --json should be implied: stdout is not a
// terminal, the caller did not choose a format, and the command prints data.
func shouldAutoJSON(args []string, stdoutIsTTY bool) bool {
	if stdoutIsTTY || len(args) == 0 || hasJSONPreference(args) || hasHelpRequest(args) {
		return false
	}
	switch firstCommand(args) {
	case "completion", "help":
		return false
	}
	return true
}

// firstCommand returns the first positional token, skipping the values of
// flags that take one.
func firstCommand(args []string) string {
	flags := commandFlags()
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return ""
		case !strings.HasPrefix(arg, "-"):
			return arg
		case strings.HasPrefix(arg, "--"):
			name, value := splitFlag(arg[2:])
			if flags.long[name] && value == "" {
				i++
			}
		case len(arg) == 2:
			if flags.short[arg[1]] {
				i++
			}
		}
	}
	return ""
}

type quickStartJSON struct {
	Name     string   `json:"name"`
	Usage    string   `json:"usage"`
	Examples []string `json:"examples"`
}

func printQuickStart(w io.Writer, asJSON bool) error {
	help := quickStartJSON{
		Name:  "petcli",
		Usage: "petcli [flags] | [items|item|categories|normalize|survey|tui] [flags]",
		Examples: []string{
			"petcli --category 강아지 --in-stock --limit 10",
			"petcli normalize 멍멍이 \"best seller\"",
			"petcli survey --activity active --personality playful --sociability social",
		},
	}

	if asJSON {
		return json.NewEncoder(w).Encode(help)
	}

	_, err := fmt.Fprintf(
		w,
		"%s\nusage: %s\nexamples:\n  %s\n  %s\n  %s\nflags: --category --sell-status --in-stock --min-price --max-price --query --sort --limit --json --api-url --token\n",
		help.Name,
		help.Usage,
		help.Examples[0],
		help.Examples[1],
		help.Examples[2],
	)
	return err
}
