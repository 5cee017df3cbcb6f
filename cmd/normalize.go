package cmd

import (
	"github.com/petnolja/petcli/internal/catalog"
	"github.com/petnolja/petcli/internal/display"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize NAME...",
	Short: "Resolve category or tag names to their canonical values",
	Long:  "Resolve each argument through the alias table. Runs offline.",
	Example: `  petcli normalize 멍멍이 cat "best seller"
  petcli normalize "노즈 워크" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	resolver := catalog.Default()

	results := make([]display.Normalized, 0, len(args))
	for _, raw := range args {
		canonical := resolver.Normalize(raw)
		results = append(results, display.Normalized{
			Input:     raw,
			Canonical: canonical,
			Known:     resolver.Known(raw),
			Label:     catalog.Label(canonical),
		})
	}

	if flagJSON {
		return display.PrintNormalizedJSON(cmd.OutOrStdout(), results)
	}
	display.PrintNormalized(cmd.OutOrStdout(), results)
	return nil
}
