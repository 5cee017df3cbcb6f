package filter

import (
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/petnolja/petcli/internal/api"
	"github.com/petnolja/petcli/internal/catalog"
	"github.com/shopspring/decimal"
)

// Criteria holds all filter criteria. A zero field disables its criterion.
type Criteria struct {
	// Categories matches items carrying any of the given categories.
	Categories []string
	// SellStatus must equal the item's status exactly.
	SellStatus string
	// InStockOnly keeps items whose stock is a number above zero.
	InStockOnly bool
	// InStockStatus, together with InStockOnly, also requires this sell status.
	InStockStatus string
	// PriceMin and PriceMax are inclusive bounds.
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	Query    string
	Sort     string
	Limit    int
}

// Active reports whether any narrowing criterion is set.
func (c Criteria) Active() bool {
	return len(selectedCategories(c.Categories)) > 0 ||
		c.SellStatus != "" ||
		c.InStockOnly ||
		c.PriceMin != nil ||
		c.PriceMax != nil ||
		strings.TrimSpace(c.Query) != ""
}

type predicate func(api.Item) bool

// Apply returns the items that satisfy every active criterion, in input
// order, then sorted and truncated as requested. The input is not modified
// and the result is never nil.
func Apply(items []api.Item, c Criteria) []api.Item {
	if len(items) == 0 {
		return []api.Item{}
	}

	preds := buildPredicates(c)
	result := make([]api.Item, 0, len(items))
	for _, item := range items {
		if matchesAll(item, preds) {
			result = append(result, item)
		}
	}

	if mode := CanonicalSortMode(c.Sort); mode != "" {
		sortItems(result, mode)
	}

	if c.Limit > 0 && c.Limit < len(result) {
		result = result[:c.Limit]
	}
	return result
}

func buildPredicates(c Criteria) []predicate {
	var preds []predicate

	if wanted := categorySet(c.Categories); len(wanted) > 0 {
		preds = append(preds, func(item api.Item) bool {
			for _, label := range ItemCategories(item) {
				if _, ok := wanted[catalog.Normalize(label)]; ok {
					return true
				}
			}
			return false
		})
	}

	if c.SellStatus != "" {
		status := c.SellStatus
		preds = append(preds, func(item api.Item) bool {
			return item.SellStatus == status
		})
	}

	if c.InStockOnly {
		status := c.InStockStatus
		preds = append(preds, func(item api.Item) bool {
			stock, ok := ScalarAmount(item.Stock)
			if !ok || !stock.IsPositive() {
				return false
			}
			return status == "" || item.SellStatus == status
		})
	}

	if c.PriceMin != nil || c.PriceMax != nil {
		lo, hi := c.PriceMin, c.PriceMax
		preds = append(preds, func(item api.Item) bool {
			price, ok := ScalarAmount(item.Price)
			if !ok {
				return false
			}
			if lo != nil && price.LessThan(*lo) {
				return false
			}
			if hi != nil && price.GreaterThan(*hi) {
				return false
			}
			return true
		})
	}

	if q := strings.ToLower(strings.TrimSpace(c.Query)); q != "" {
		preds = append(preds, func(item api.Item) bool {
			return strings.Contains(strings.ToLower(CleanText(item.Name)), q) ||
				strings.Contains(strings.ToLower(CleanText(item.Description)), q) ||
				strings.Contains(strings.ToLower(item.Brand), q)
		})
	}

	return preds
}

func matchesAll(item api.Item, preds []predicate) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}

func selectedCategories(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}

func categorySet(raw []string) map[string]struct{} {
	selected := selectedCategories(raw)
	if len(selected) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(selected))
	for _, c := range selected {
		set[catalog.Normalize(c)] = struct{}{}
	}
	return set
}

// categoryExtractors is the order in which an item's category fields are
// consulted; the first field carrying any label wins.
var categoryExtractors = []struct {
	field   string
	extract func(api.Item) []string
}{
	{"categories", func(i api.Item) []string { return i.Categories }},
	{"categoryList", func(i api.Item) []string { return i.CategoryList }},
	{"tags", func(i api.Item) []string { return i.Tags }},
	{"category", func(i api.Item) []string { return i.Category }},
}

// ItemCategories returns the raw category labels of an item.
func ItemCategories(item api.Item) []string {
	for _, ex := range categoryExtractors {
		if labels := selectedCategories(ex.extract(item)); len(labels) > 0 {
			return labels
		}
	}
	return nil
}

// Categories returns a map of canonical category to the number of items
// carrying it.
func Categories(items []api.Item) map[string]int {
	cats := make(map[string]int)
	for _, item := range items {
		seen := make(map[string]struct{})
		for _, label := range ItemCategories(item) {
			c := catalog.Normalize(label)
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			cats[c]++
		}
	}
	return cats
}

// ParseAmount parses a price or stock value, ignoring thousands separators.
// Anything that is not a finite float64 reports false. Exponent forms are
// reduced to float64 precision so a huge exponent cannot blow up later
// comparisons.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	clean := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if clean == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	f, _ := strconv.ParseFloat(clean, 64)
	if math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	if strings.ContainsAny(clean, "eE") {
		return decimal.NewFromFloat(f), true
	}
	return d, true
}

// ScalarAmount parses a backend scalar field with ParseAmount.
func ScalarAmount(s api.Scalar) (decimal.Decimal, bool) {
	if !s.Valid {
		return decimal.Zero, false
	}
	return ParseAmount(s.Raw)
}

// CleanText unescapes HTML entities and normalizes whitespace.
func CleanText(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
