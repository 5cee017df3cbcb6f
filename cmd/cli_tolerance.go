package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagAliases maps shop vocabulary people reach for onto the real flag names.
var flagAliases = map[string]string{
	"url":       "api-url",
	"base-url":  "api-url",
	"api":       "api-url",
	"cat":       "category",
	"tag":       "category",
	"status":    "sell-status",
	"instock":   "in-stock",
	"available": "in-stock",
	"min":       "min-price",
	"max":       "max-price",
	"price-min": "min-price",
	"price-max": "max-price",
	"search":    "query",
	"keyword":   "query",
	"order":     "sort",
	"top":       "limit",
	"species":   "pet-type",
	"pet":       "pet-type",
	"debug":     "verbose",
}

// flagTable records, for every flag registered anywhere in the command tree,
// whether it consumes the following argument.
type flagTable struct {
	long  map[string]bool
	short map[byte]bool
}

// commandFlags collects the flag table from rootCmd. Cobra only adds --help
// during execution, so it is seeded here.
func commandFlags() flagTable {
	t := flagTable{
		long:  map[string]bool{"help": false},
		short: map[byte]bool{'h': false},
	}
	add := func(f *pflag.Flag) {
		takesValue := f.NoOptDefVal == ""
		t.long[f.Name] = takesValue
		if len(f.Shorthand) == 1 {
			t.short[f.Shorthand[0]] = takesValue
		}
	}
	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.PersistentFlags().VisitAll(add)
		c.LocalFlags().VisitAll(add)
		for _, child := range c.Commands() {
			walk(child)
		}
	}
	walk(rootCmd)
	return t
}

// resolve maps a possibly misspelled or aliased flag name to a registered one.
func (t flagTable) resolve(raw string) (string, bool) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	if canonical, ok := flagAliases[name]; ok {
		return canonical, true
	}
	if _, ok := t.long[name]; ok {
		return name, true
	}
	names := make([]string, 0, len(t.long))
	for n := range t.long {
		names = append(names, n)
	}
	return closestMatch(name, names, 2)
}

// commandNames lists the subcommands of rootCmd plus the ones cobra adds
// lazily at execution time.
func commandNames() []string {
	seen := map[string]bool{"help": true, "completion": true}
	names := []string{"help", "completion"}
	for _, c := range rootCmd.Commands() {
		if !seen[c.Name()] {
			seen[c.Name()] = true
			names = append(names, c.Name())
		}
	}
	return names
}

func resolveCommand(raw string, names []string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for _, n := range names {
		if n == name {
			return n, true
		}
	}
	return closestMatch(name, names, 2)
}

// closestMatch returns the candidate with the smallest edit distance to target
// when it is within maxDistance. Ties go to the alphabetically first name.
func closestMatch(target string, candidates []string, maxDistance int) (string, bool) {
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	best, bestDist := "", maxDistance+1
	for _, c := range sorted {
		if d := levenshtein.ComputeDistance(target, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist <= maxDistance
}

// argRewriter walks argv once and repairs near-miss syntax: single-dash long
// flags, key=value tokens, misspelled or aliased flag names, and misspelled
// commands. Values consumed by a flag and anything after "--" pass through
// untouched.
type argRewriter struct {
	flags    flagTable
	commands []string

	out   []string
	notes []string

	command      string
	nestedTaken  bool
	pendingValue bool
	literal      bool
}

func normalizeCLIArgs(args []string) ([]string, []string) {
	r := &argRewriter{
		flags:    commandFlags(),
		commands: commandNames(),
		out:      make([]string, 0, len(args)),
		notes:    make([]string, 0, 2),
	}
	for i, tok := range args {
		r.feed(tok, i == len(args)-1)
	}
	return r.out, r.notes
}

func (r *argRewriter) feed(tok string, last bool) {
	if r.literal || r.pendingValue {
		r.pendingValue = false
		r.out = append(r.out, tok)
		return
	}
	if tok == "--" {
		r.literal = true
		r.out = append(r.out, tok)
		return
	}

	if flag, takesValue, ok := r.rewriteFlag(tok); ok {
		r.emit(tok, flag)
		r.pendingValue = takesValue && !strings.Contains(flag, "=") && !last
		return
	}

	if r.acceptsCommand() && !strings.HasPrefix(tok, "-") {
		if name, ok := resolveCommand(tok, r.commands); ok {
			r.emit(tok, name)
			if r.command == "" {
				r.command = name
			} else {
				r.nestedTaken = true
			}
			return
		}
	}

	if r.bareFlagsAllowed() && !strings.HasPrefix(tok, "-") {
		if name, ok := r.flags.resolve(tok); ok {
			flag := "--" + name
			r.emit(tok, flag)
			r.pendingValue = r.flags.long[name] && !last
			return
		}
	}

	r.out = append(r.out, tok)
}

// rewriteFlag reports whether tok is flag syntax, the corrected token, and
// whether the flag consumes the next argument. Unknown dashed tokens are kept
// as they are for cobra to reject.
func (r *argRewriter) rewriteFlag(tok string) (string, bool, bool) {
	switch {
	case strings.HasPrefix(tok, "--"):
		name, value := splitFlag(tok[2:])
		if canonical, ok := r.flags.resolve(name); ok {
			return "--" + canonical + value, r.flags.long[canonical], true
		}
		return tok, false, true

	case len(tok) == 2 && tok[0] == '-':
		return tok, r.flags.short[tok[1]], true

	case strings.HasPrefix(tok, "-") && len(tok) > 2:
		name, value := splitFlag(tok[1:])
		if canonical, ok := r.flags.resolve(name); ok {
			return "--" + canonical + value, r.flags.long[canonical], true
		}
		return tok, false, true

	case strings.Contains(tok, "="):
		name, value := splitFlag(tok)
		if canonical, ok := r.flags.resolve(name); ok {
			return "--" + canonical + value, r.flags.long[canonical], true
		}
	}
	return "", false, false
}

func (r *argRewriter) emit(original, rewritten string) {
	r.out = append(r.out, rewritten)
	if rewritten == original {
		return
	}
	if strings.HasPrefix(rewritten, "-") {
		r.notes = append(r.notes, fmt.Sprintf("interpreted `%s` as `%s`; use `%s` next time.", original, rewritten, rewritten))
		return
	}
	r.notes = append(r.notes, fmt.Sprintf("interpreted command `%s` as `%s`; use `%s` next time.", original, rewritten, rewritten))
}

// acceptsCommand is true before the first command, and once more after help or
// completion, which take a command name as their argument.
func (r *argRewriter) acceptsCommand() bool {
	if r.command == "" {
		return true
	}
	return (r.command == "help" || r.command == "completion") && !r.nestedTaken
}

// bareFlagsAllowed limits `counts` -> `--counts` style rewrites to places where
// no positional value is expected: before any command, and under categories.
func (r *argRewriter) bareFlagsAllowed() bool {
	return r.command == "" || r.command == "categories"
}

func splitFlag(value string) (string, string) {
	name, rest, found := strings.Cut(value, "=")
	if !found {
		return value, ""
	}
	return name, "=" + rest
}
