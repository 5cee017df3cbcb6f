package cmd

import (
	"fmt"
	"strings"

	"github.com/petnolja/petcli/internal/api"
	"github.com/petnolja/petcli/internal/catalog"
	"github.com/petnolja/petcli/internal/display"
	"github.com/petnolja/petcli/internal/filter"
	"github.com/spf13/cobra"
)

var (
	flagGroup  string
	flagCounts bool
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List category options, or category counts in the live catalog",
	Long: "Without flags, prints the static category table with its aliases.\n" +
		"With --counts, fetches items and counts them per canonical category.",
	Example: `  petcli categories
  petcli categories --group pet --json
  petcli categories --counts`,
	RunE: runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().StringVar(&flagGroup, "group", "", "Only show one group ("+strings.Join(catalog.Groups(), ", ")+")")
	categoriesCmd.Flags().BoolVar(&flagCounts, "counts", false, "Count fetched items per canonical category")
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if flagCounts {
		return runCategoryCounts(cmd)
	}

	options := catalog.Options()
	if group := strings.ToLower(strings.TrimSpace(flagGroup)); group != "" {
		if indexOfString(catalog.Groups(), group) < 0 {
			return invalidArgsError(
				fmt.Sprintf("invalid value for --group (use %s)", strings.Join(catalog.Groups(), ", ")),
				"petcli categories --group pet",
			)
		}
		options = catalog.OptionsByGroup(group)
	}

	if flagJSON {
		return display.PrintCategoryOptionsJSON(cmd.OutOrStdout(), options)
	}
	display.PrintCategoryOptions(cmd.OutOrStdout(), options)
	return nil
}

func runCategoryCounts(cmd *cobra.Command) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	items, err := client.FetchItems(cmd.Context(), api.ItemQuery{})
	if err != nil {
		return upstreamError("fetching items", err)
	}
	if len(items) == 0 {
		return notFoundError(
			"no items found in the shop catalog",
			"Check --api-url points at the shop backend.",
		)
	}

	cats := filter.Categories(items)

	if flagJSON {
		return display.PrintCategoryCountsJSON(cmd.OutOrStdout(), cats)
	}
	display.PrintCategoryCounts(cmd.OutOrStdout(), cats)
	return nil
}
