package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/petnolja/petcli/internal/api"
	"github.com/petnolja/petcli/internal/display"
	"github.com/petnolja/petcli/internal/filter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse items interactively in the terminal",
	Example: `  petcli tui
  petcli tui --category 고양이 --in-stock --sort price-asc`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	registerItemFilterFlags(tuiCmd.Flags())
}

func runTUI(cmd *cobra.Command, _ []string) error {
	criteria, notes, err := buildCriteria()
	if err != nil {
		return err
	}
	if !flagJSON && !isInteractiveSession(cmd.InOrStdin(), cmd.OutOrStdout()) {
		return invalidArgsError(
			"`petcli tui` requires an interactive terminal",
			"Use `petcli --category dog --json` in pipelines.",
		)
	}
	for _, note := range notes {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %s\n", note)
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	if flagJSON {
		items, _, err := loadTUIData(cmd.Context(), client)
		if err != nil {
			return err
		}
		items = filter.Apply(items, criteria)
		if len(items) == 0 {
			return notFoundError(
				"no items match your filters",
				"Relax filters like --category/--query/--min-price/--max-price.",
			)
		}
		return display.PrintItemsJSON(cmd.OutOrStdout(), items)
	}

	model := newLoadingItemsTUIModel(tuiLoadConfig{
		ctx:             cmd.Context(),
		client:          client,
		initialCriteria: criteria,
	})
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	final, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running tui: %w", err)
	}
	if m, ok := final.(itemsTUIModel); ok && m.fatalErr != nil {
		return m.fatalErr
	}
	return nil
}

// loadTUIData fetches the full catalog once; filtering happens in the model.
func loadTUIData(ctx context.Context, client *api.Client) ([]api.Item, string, error) {
	items, err := client.FetchItems(ctx, api.ItemQuery{})
	if err != nil {
		return nil, "", upstreamError("fetching items", err)
	}
	if len(items) == 0 {
		return nil, "", notFoundError(
			"no items found in the shop catalog",
			"Check --api-url points at the shop backend.",
		)
	}
	logger.Debug("tui data loaded", zap.Int("items", len(items)))
	return items, client.BaseURL(), nil
}

func isInteractiveSession(stdin io.Reader, stdout io.Writer) bool {
	inputFile, ok := stdin.(*os.File)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(inputFile.Fd())) {
		return false
	}
	return isTTY(stdout)
}
