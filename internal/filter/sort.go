package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/petnolja/petcli/internal/api"
)

// Sort modes.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortName      = "name"
	SortNewest    = "newest"
)

// CanonicalSortMode maps a user-supplied sort name to one of the sort modes,
// or "" for the backend's own order.
func CanonicalSortMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "price-asc", "price", "low", "cheap", "cheapest", "낮은가격순":
		return SortPriceAsc
	case "price-desc", "high", "expensive", "높은가격순":
		return SortPriceDesc
	case "name", "title", "이름순":
		return SortName
	case "newest", "new", "latest", "recent", "최신순":
		return SortNewest
	default:
		return ""
	}
}

// ValidSortMode reports whether raw is empty, "relevance", or a known sort alias.
func ValidSortMode(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "relevance", "default":
		return true
	}
	return CanonicalSortMode(raw) != ""
}

// sortItems orders items in place. Items whose sort key cannot be parsed go
// last, keeping their relative order.
func sortItems(items []api.Item, mode string) {
	switch mode {
	case SortPriceAsc, SortPriceDesc:
		desc := mode == SortPriceDesc
		sort.SliceStable(items, func(i, j int) bool {
			pi, okI := ScalarAmount(items[i].Price)
			pj, okJ := ScalarAmount(items[j].Price)
			if okI != okJ {
				return okI
			}
			if !okI {
				return false
			}
			if desc {
				return pi.GreaterThan(pj)
			}
			return pi.LessThan(pj)
		})
	case SortName:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(CleanText(items[i].Name)) < strings.ToLower(CleanText(items[j].Name))
		})
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			ti, okI := parseItemDate(items[i].CreatedAt)
			tj, okJ := parseItemDate(items[j].CreatedAt)
			if okI != okJ {
				return okI
			}
			return okI && ti.After(tj)
		})
	}
}

func parseItemDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"2006.01.02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
