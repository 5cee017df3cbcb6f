package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/petnolja/petcli/internal/api"
	"github.com/petnolja/petcli/internal/catalog"
	"github.com/petnolja/petcli/internal/filter"
	"github.com/petnolja/petcli/internal/survey"
	"github.com/shopspring/decimal"
)

// Styles for terminal output.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	soldOutTag   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")) // magenta
	priceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))            // green
	stockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))            // yellow
	dimStyle     = lipgloss.NewStyle().Faint(true)
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// ItemJSON is the JSON output shape for an item.
type ItemJSON struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Brand       string           `json:"brand"`
	Description string           `json:"description"`
	SellStatus  string           `json:"sellStatus"`
	Stock       string           `json:"stock"`
	InStock     bool             `json:"inStock"`
	Price       string           `json:"price"`
	PriceValue  *decimal.Decimal `json:"priceValue"`
	Categories  []string         `json:"categories"`
	Labels      []string         `json:"labels"`
	ImageURL    string           `json:"imageUrl"`
	CreatedAt   string           `json:"createdAt"`
}

// Normalized pairs a raw category name with its canonical value.
type Normalized struct {
	Input     string `json:"input"`
	Canonical string `json:"canonical"`
	Known     bool   `json:"known"`
	Label     string `json:"label"`
}

// PrintItems renders a list of items to the writer.
func PrintItems(w io.Writer, items []api.Item) {
	fmt.Fprintf(w, "\n%s — %s\n\n",
		headerStyle.Render("Pet Shop Items"),
		cyanStyle.Render(fmt.Sprintf("%d items", len(items))),
	)

	for _, item := range items {
		printItem(w, item)
		fmt.Fprintln(w)
	}
}

// PrintItemsJSON renders items as JSON.
func PrintItemsJSON(w io.Writer, items []api.Item) error {
	out := make([]ItemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, ToItemJSON(item))
	}
	return json.NewEncoder(w).Encode(out)
}

// PrintItemDetail renders one item with every field it carries.
func PrintItemDetail(w io.Writer, item api.Item) {
	fmt.Fprintln(w)
	printItem(w, item)

	var meta []string
	if id := item.ID.String(); id != "" {
		meta = append(meta, "ID "+id)
	}
	if item.CreatedAt != "" {
		meta = append(meta, "Added "+item.CreatedAt)
	}
	if item.ImageURL != "" {
		meta = append(meta, item.ImageURL)
	}
	if len(meta) > 0 {
		fmt.Fprintf(w, "    %s\n", dimStyle.Render(strings.Join(meta, " | ")))
	}
	fmt.Fprintln(w)
}

// PrintItemJSON renders one item as JSON.
func PrintItemJSON(w io.Writer, item api.Item) error {
	return json.NewEncoder(w).Encode(ToItemJSON(item))
}

// PrintCategoryOptions renders the static category table grouped by group.
func PrintCategoryOptions(w io.Writer, options []catalog.CategoryOption) {
	fmt.Fprintf(w, "\n%s\n", titleStyle.Render("Categories:"))

	byGroup := make(map[string][]catalog.CategoryOption)
	var groups []string
	for _, opt := range options {
		if _, ok := byGroup[opt.Group]; !ok {
			groups = append(groups, opt.Group)
		}
		byGroup[opt.Group] = append(byGroup[opt.Group], opt)
	}

	for _, g := range groups {
		fmt.Fprintf(w, "\n  %s\n", headerStyle.Render(g))
		for _, opt := range byGroup[g] {
			fmt.Fprintf(w, "    %-10s %s", cyanStyle.Render(opt.Value), opt.Label)
			if len(opt.Aliases) > 0 {
				fmt.Fprintf(w, "  %s", dimStyle.Render(strings.Join(opt.Aliases, ", ")))
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)
}

// PrintCategoryOptionsJSON renders the category table as JSON.
func PrintCategoryOptionsJSON(w io.Writer, options []catalog.CategoryOption) error {
	if options == nil {
		options = []catalog.CategoryOption{}
	}
	return json.NewEncoder(w).Encode(options)
}

// PrintCategoryCounts renders canonical categories and their item counts.
func PrintCategoryCounts(w io.Writer, cats map[string]int) {
	type catCount struct {
		Name  string
		Count int
	}
	sorted := make([]catCount, 0, len(cats))
	for k, v := range cats {
		sorted = append(sorted, catCount{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Name < sorted[j].Name
	})

	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render("Categories in the current catalog:"))
	for _, c := range sorted {
		label := catalog.Label(c.Name)
		name := c.Name
		if label != c.Name {
			name = fmt.Sprintf("%s (%s)", c.Name, label)
		}
		fmt.Fprintf(w, "  %s: %d items\n", cyanStyle.Render(name), c.Count)
	}
	fmt.Fprintln(w)
}

// PrintCategoryCountsJSON renders category counts as JSON.
func PrintCategoryCountsJSON(w io.Writer, cats map[string]int) error {
	if cats == nil {
		cats = map[string]int{}
	}
	return json.NewEncoder(w).Encode(cats)
}

// PrintNormalized renders alias resolution results.
func PrintNormalized(w io.Writer, results []Normalized) {
	fmt.Fprintln(w)
	for _, r := range results {
		status := cyanStyle.Render(r.Canonical)
		if !r.Known {
			status += " " + dimStyle.Render("(unknown)")
		} else if r.Label != r.Canonical {
			status += " " + dimStyle.Render(r.Label)
		}
		fmt.Fprintf(w, "  %s → %s\n", titleStyle.Render(r.Input), status)
	}
	fmt.Fprintln(w)
}

// PrintNormalizedJSON renders alias resolution results as JSON.
func PrintNormalizedJSON(w io.Writer, results []Normalized) error {
	if results == nil {
		results = []Normalized{}
	}
	return json.NewEncoder(w).Encode(results)
}

// PrintPetType renders a survey result.
func PrintPetType(w io.Writer, pt survey.PetType) {
	fmt.Fprintf(w, "\n%s %s %s\n",
		pt.Emoji,
		headerStyle.Render(pt.Title),
		dimStyle.Render("["+pt.Code+"]"),
	)
	if pt.Description != "" {
		fmt.Fprintf(w, "  %s\n", wordWrap(pt.Description, 72, "  "))
	}

	if len(pt.Recommendations) > 0 {
		fmt.Fprintf(w, "\n  %s\n", titleStyle.Render("Recommended products"))
		for _, r := range pt.Recommendations {
			fmt.Fprintf(w, "    • %s %s\n", r, dimStyle.Render(catalog.Normalize(r)))
		}
	}
	if len(pt.Activities) > 0 {
		fmt.Fprintf(w, "\n  %s\n", titleStyle.Render("Activities to try"))
		for _, a := range pt.Activities {
			fmt.Fprintf(w, "    • %s\n", a)
		}
	}
	fmt.Fprintln(w)
}

// PrintPetTypeJSON renders a survey result as JSON.
func PrintPetTypeJSON(w io.Writer, pt survey.PetType) error {
	return json.NewEncoder(w).Encode(pt)
}

// PrintError prints a styled error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(msg))
}

// PrintWarning prints a styled warning message.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render(msg))
}

// FormatPrice renders a price with thousands separators and the won sign.
// Unparsable prices are shown as given, and absent ones as an empty string.
func FormatPrice(s api.Scalar) string {
	amount, ok := filter.ScalarAmount(s)
	if !ok {
		return filter.CleanText(s.String())
	}
	return groupThousands(amount) + "원"
}

func groupThousands(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	d = d.Abs()

	whole := d.Truncate(0)
	frac := strings.TrimPrefix(d.Sub(whole).String(), "0")
	return sign + humanize.BigComma(whole.BigInt()) + frac
}

// ToItemJSON converts an item to its JSON output shape.
func ToItemJSON(item api.Item) ItemJSON {
	labels := filter.ItemCategories(item)
	if labels == nil {
		labels = []string{}
	}
	categories := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		c := catalog.Normalize(l)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		categories = append(categories, c)
	}

	out := ItemJSON{
		ID:          item.ID.String(),
		Name:        filter.CleanText(item.Name),
		Brand:       filter.CleanText(item.Brand),
		Description: filter.CleanText(item.Description),
		SellStatus:  item.SellStatus,
		Stock:       item.Stock.String(),
		InStock:     inStock(item),
		Price:       item.Price.String(),
		Categories:  categories,
		Labels:      labels,
		ImageURL:    item.ImageURL,
		CreatedAt:   item.CreatedAt,
	}
	if amount, ok := filter.ScalarAmount(item.Price); ok {
		out.PriceValue = &amount
	}
	return out
}

func inStock(item api.Item) bool {
	stock, ok := filter.ScalarAmount(item.Stock)
	return ok && stock.IsPositive()
}

func printItem(w io.Writer, item api.Item) {
	name := filter.CleanText(item.Name)
	if name == "" {
		name = filter.CleanText(item.Brand)
	}
	if name == "" {
		name = "Unknown"
	}
	desc := filter.CleanText(item.Description)
	brand := filter.CleanText(item.Brand)

	// Name line
	tag := ""
	switch item.SellStatus {
	case api.SellStatusSoldOut:
		tag = soldOutTag.Render("SOLD OUT") + " "
	case api.SellStatusStopped:
		tag = soldOutTag.Render("STOPPED") + " "
	}
	fmt.Fprintf(w, "  %s%s\n", tag, titleStyle.Render(name))

	// Price / stock
	var parts []string
	if price := FormatPrice(item.Price); price != "" {
		parts = append(parts, priceStyle.Render(price))
	}
	if stock := item.Stock.String(); stock != "" {
		parts = append(parts, stockStyle.Render("stock "+stock))
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "    %s\n", strings.Join(parts, " | "))
	}

	// Description
	if desc != "" {
		fmt.Fprintf(w, "    %s\n", dimStyle.Render(wordWrap(desc, 72, "    ")))
	}

	// Meta
	var meta []string
	if brand != "" && brand != name {
		meta = append(meta, brand)
	}
	if labels := filter.ItemCategories(item); len(labels) > 0 {
		meta = append(meta, strings.Join(labels, ", "))
	}
	if len(meta) > 0 {
		fmt.Fprintf(w, "    %s\n", dimStyle.Render(strings.Join(meta, " | ")))
	}
}

func wordWrap(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n"+indent)
}
