package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/petnolja/petcli/internal/api"
	"github.com/petnolja/petcli/internal/catalog"
	"github.com/petnolja/petcli/internal/config"
	"github.com/petnolja/petcli/internal/display"
	"github.com/petnolja/petcli/internal/filter"
	"github.com/petnolja/petcli/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	flagAPIURL  string
	flagToken   string
	flagConfig  string
	flagJSON    bool
	flagVerbose bool

	flagCategories    []string
	flagSellStatus    string
	flagInStock       bool
	flagInStockStatus string
	flagMinPrice      string
	flagMaxPrice      string
	flagQuery         string
	flagSort          string
	flagLimit         int
)

var (
	appConfig *config.Config
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "petcli",
	Short: "Browse and filter pet shop items from the terminal",
	Long: "CLI tool that fetches items from the pet shop backend and filters them by category,\n" +
		"sell status, stock and price. Category names are resolved through the shop's alias\n" +
		"table, so 강아지, dog and DOG all select the same items.\n\n" +
		"Agent-friendly mode: minor syntax issues are auto-corrected when intent is clear " +
		"(for example: -category dog, category=dog, --categroy dog).",
	Example: `  petcli --category 강아지 --in-stock
  petcli --category dog,snack --max-price 20000 --sort price-asc
  petcli item 42
  petcli categories --counts
  petcli normalize 멍멍이 "best seller"
  petcli survey --activity active --personality playful --sociability social`,
	PersistentPreRunE: setupRuntime,
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Sync()
	},
}

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List items matching the filter flags",
	Example: `  petcli items --category cat --in-stock-status SELL --in-stock
  petcli items -c 간식 -c 장난감 -q 치킨 -n 5 --json`,
	RunE: runItems,
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization cycle.
	rootCmd.RunE = runItems
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagAPIURL, "api-url", "", "Shop backend base URL (default from config or "+config.EnvAPIURL+")")
	pf.StringVar(&flagToken, "token", "", "Bearer token for the shop backend")
	pf.StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging on stderr")

	registerItemFilterFlags(rootCmd.Flags())
	registerItemFilterFlags(itemsCmd.Flags())
	rootCmd.AddCommand(itemsCmd)
}

// Execute runs the root command.
func Execute() {
	os.Exit(runCLI(os.Args[1:], os.Stdout, os.Stderr))
}

func runCLI(args []string, stdout, stderr io.Writer) int {
	resetCLIState()

	normalizedArgs, notes := normalizeCLIArgs(args)
	for _, note := range notes {
		fmt.Fprintf(stderr, "note: %s\n", note)
	}

	if len(normalizedArgs) == 0 {
		if err := printQuickStart(stdout, !isTTY(stdout)); err != nil {
			cliErr := classifyCLIError(err)
			fmt.Fprintln(stderr, formatCLIErrorText(cliErr))
			return cliErr.ExitCode
		}
		return ExitSuccess
	}

	if shouldAutoJSON(normalizedArgs, isTTY(stdout)) {
		normalizedArgs = append(normalizedArgs, "--json")
	}

	setCommandIO(rootCmd, stdout, stderr)
	rootCmd.SetArgs(normalizedArgs)

	if err := rootCmd.Execute(); err != nil {
		cliErr := classifyCLIError(err)
		if hasJSONPreference(normalizedArgs) {
			if jerr := printCLIErrorJSON(stderr, cliErr); jerr != nil {
				fmt.Fprintln(stderr, formatCLIErrorText(classifyCLIError(jerr)))
				return ExitInternal
			}
		} else {
			fmt.Fprintln(stderr, formatCLIErrorText(cliErr))
		}
		return cliErr.ExitCode
	}
	return ExitSuccess
}

func setCommandIO(cmd *cobra.Command, stdout, stderr io.Writer) {
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	for _, child := range cmd.Commands() {
		setCommandIO(child, stdout, stderr)
	}
}

func resetCLIState() {
	flagAPIURL = ""
	flagToken = ""
	flagConfig = ""
	flagJSON = false
	flagVerbose = false
	flagCategories = nil
	flagSellStatus = ""
	flagInStock = false
	flagInStockStatus = ""
	flagMinPrice = ""
	flagMaxPrice = ""
	flagQuery = ""
	flagSort = ""
	flagLimit = 0
	flagGroup = ""
	flagCounts = false
	flagActivity = ""
	flagPersonality = ""
	flagSociability = ""
	flagPetType = ""
	flagShop = false
	flagShopCount = 3

	appConfig = nil
	logger = zap.NewNop()
	resetFlagState(rootCmd)
}

// resetFlagState clears parse state that cobra keeps between executions,
// such as a --help seen on an earlier run.
func resetFlagState(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Name == "help" {
			_ = f.Value.Set("false")
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlagState(child)
	}
}

func registerItemFilterFlags(f *pflag.FlagSet) {
	f.StringSliceVarP(&flagCategories, "category", "c", nil, "Filter by category or tag; repeatable or comma separated (e.g., 강아지, dog, snack)")
	f.StringVar(&flagSellStatus, "sell-status", "", "Filter by sell status (SELL, SOLD_OUT, STOP)")
	f.BoolVar(&flagInStock, "in-stock", false, "Show only items with stock above zero")
	f.StringVar(&flagInStockStatus, "in-stock-status", "", "With --in-stock, also require this sell status")
	f.StringVar(&flagMinPrice, "min-price", "", "Minimum price, inclusive (e.g., 10000 or 10,000)")
	f.StringVar(&flagMaxPrice, "max-price", "", "Maximum price, inclusive")
	f.StringVarP(&flagQuery, "query", "q", "", "Search items by keyword in name/description/brand")
	f.StringVar(&flagSort, "sort", "", "Sort by relevance, price-asc, price-desc, name, or newest")
	f.IntVarP(&flagLimit, "limit", "n", 0, "Limit number of results (0 = all)")
}

func skipsRuntime(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return true
		}
	}
	return false
}

// setupRuntime loads configuration and builds the logger before any command
// runs. Flags override config file and environment values.
func setupRuntime(cmd *cobra.Command, _ []string) error {
	if skipsRuntime(cmd) {
		return nil
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return invalidArgsError(err.Error(), "petcli --config ./petcli.yaml")
	}
	if flagAPIURL != "" {
		cfg.API.BaseURL = flagAPIURL
	}
	if flagToken != "" {
		cfg.API.Token = flagToken
	}
	appConfig = cfg

	level := cfg.Log.Level
	if flagVerbose {
		level = "debug"
	}
	logger = logging.New(level, cmd.ErrOrStderr())
	logger.Debug("configuration loaded",
		zap.String("api_url", cfg.API.BaseURL),
		zap.Bool("token_set", cfg.API.Token != ""),
		zap.String("timeout", cfg.API.Timeout))
	return nil
}

func newClient() (*api.Client, error) {
	cfg := appConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, invalidArgsError(
			err.Error(),
			"petcli --api-url http://localhost:8080/api",
			"export "+config.EnvAPIURL+"=https://shop.example.com/api",
		)
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, invalidArgsError(err.Error())
	}
	return api.NewClient(cfg.API.BaseURL, cfg.API.Token,
		api.WithTimeout(timeout),
		api.WithLogger(logger),
	), nil
}

type itemFilterInput struct {
	SellStatus    string `flag:"sell-status" validate:"omitempty,oneof=SELL SOLD_OUT STOP"`
	InStockStatus string `flag:"in-stock-status" validate:"omitempty,oneof=SELL SOLD_OUT STOP"`
	MinPrice      string `flag:"min-price" validate:"omitempty,amount"`
	MaxPrice      string `flag:"max-price" validate:"omitempty,amount"`
	Limit         int    `flag:"limit" validate:"gte=0"`
}

// buildCriteria validates the filter flags and returns the criteria along with
// notes about category names the alias table does not know.
func buildCriteria() (filter.Criteria, []string, error) {
	input := itemFilterInput{
		SellStatus:    strings.ToUpper(strings.TrimSpace(flagSellStatus)),
		InStockStatus: strings.ToUpper(strings.TrimSpace(flagInStockStatus)),
		MinPrice:      strings.TrimSpace(flagMinPrice),
		MaxPrice:      strings.TrimSpace(flagMaxPrice),
		Limit:         flagLimit,
	}
	if err := validateInput(input, "petcli --min-price 10000 --max-price 30,000", "petcli --sell-status SELL"); err != nil {
		return filter.Criteria{}, nil, err
	}
	if !filter.ValidSortMode(flagSort) {
		return filter.Criteria{}, nil, invalidArgsError(
			"invalid value for --sort (use relevance, price-asc, price-desc, name, or newest)",
			"petcli --sort price-asc",
			"petcli --sort newest",
		)
	}

	c := filter.Criteria{
		SellStatus:    input.SellStatus,
		InStockOnly:   flagInStock,
		InStockStatus: input.InStockStatus,
		Query:         strings.TrimSpace(flagQuery),
		Sort:          flagSort,
		Limit:         input.Limit,
	}
	if input.MinPrice != "" {
		lo, _ := filter.ParseAmount(input.MinPrice)
		c.PriceMin = &lo
	}
	if input.MaxPrice != "" {
		hi, _ := filter.ParseAmount(input.MaxPrice)
		c.PriceMax = &hi
	}
	if c.PriceMin != nil && c.PriceMax != nil && c.PriceMin.GreaterThan(*c.PriceMax) {
		return filter.Criteria{}, nil, invalidArgsError(
			"--min-price must not exceed --max-price",
			"petcli --min-price 10000 --max-price 30000",
		)
	}

	var notes []string
	resolver := catalog.Default()
	for _, raw := range flagCategories {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		c.Categories = append(c.Categories, name)
		if !resolver.Known(name) {
			notes = append(notes, fmt.Sprintf("category %q is not in the alias table; matching it as %q.", name, resolver.Normalize(name)))
		}
	}
	return c, notes, nil
}

func runItems(cmd *cobra.Command, _ []string) error {
	criteria, notes, err := buildCriteria()
	if err != nil {
		return err
	}
	for _, note := range notes {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %s\n", note)
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	items, err := client.FetchItems(cmd.Context(), api.ItemQuery{Keyword: criteria.Query})
	if err != nil {
		return upstreamError("fetching items", err)
	}
	if len(items) == 0 {
		return notFoundError(
			"no items found in the shop catalog",
			"Check --api-url points at the shop backend.",
		)
	}

	logger.Debug("applying filters",
		zap.Int("fetched", len(items)),
		zap.Strings("categories", criteria.Categories),
		zap.Bool("active", criteria.Active()))
	items = filter.Apply(items, criteria)

	if len(items) == 0 {
		return notFoundError(
			"no items match your filters",
			"Relax filters like --category/--query/--min-price/--max-price.",
		)
	}

	if flagJSON {
		return display.PrintItemsJSON(cmd.OutOrStdout(), items)
	}
	display.PrintItems(cmd.OutOrStdout(), items)
	return nil
}
