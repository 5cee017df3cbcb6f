package cmd

import (
	"errors"
	"fmt"

	"github.com/petnolja/petcli/internal/api"
	"github.com/petnolja/petcli/internal/display"
	"github.com/spf13/cobra"
)

var itemCmd = &cobra.Command{
	Use:   "item ID",
	Short: "Show one item in detail",
	Example: `  petcli item 42
  petcli item 42 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runItem,
}

func init() {
	rootCmd.AddCommand(itemCmd)
}

func runItem(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	item, err := client.FetchItem(cmd.Context(), args[0])
	if errors.Is(err, api.ErrNotFound) {
		return notFoundError(
			fmt.Sprintf("item %s not found", args[0]),
			"List item IDs with `petcli items --json`.",
		)
	}
	if err != nil {
		return upstreamError("fetching item", err)
	}

	if flagJSON {
		return display.PrintItemJSON(cmd.OutOrStdout(), *item)
	}
	display.PrintItemDetail(cmd.OutOrStdout(), *item)
	return nil
}
