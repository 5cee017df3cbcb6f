package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

var (
	// ErrAliasConflict is returned when one surface form would resolve to two
	// different canonical values.
	ErrAliasConflict = errors.New("alias maps to more than one category")
	// ErrDuplicateValue is returned when two options share a canonical value.
	ErrDuplicateValue = errors.New("duplicate category value")
)

// Resolver maps surface forms of category and tag names to canonical values.
// It is immutable once built and safe for concurrent use.
type Resolver struct {
	table map[string]string
}

// NewResolver builds the alias table from the option list and the auxiliary
// tag alias table. Every alias is registered as given, upper-cased and
// lower-cased, plus the same three forms with whitespace removed when the
// alias contains any.
func NewResolver(options []CategoryOption, tags map[string][]string) (*Resolver, error) {
	r := &Resolver{table: make(map[string]string, 6*(len(options)+len(tags)))}

	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		value := strings.TrimSpace(opt.Value)
		if _, dup := seen[value]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateValue, value)
		}
		seen[value] = struct{}{}
		if err := r.register(value, opt.Aliases); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := r.register(strings.TrimSpace(k), tags[k]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustNewResolver is NewResolver that panics on a malformed table.
func MustNewResolver(options []CategoryOption, tags map[string][]string) *Resolver {
	r, err := NewResolver(options, tags)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return r
}

func (r *Resolver) register(canonical string, aliases []string) error {
	if canonical == "" {
		return fmt.Errorf("empty canonical value")
	}
	if err := r.insert(canonical, canonical); err != nil {
		return err
	}
	for _, alias := range aliases {
		if err := r.insert(alias, canonical); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) insert(alias, canonical string) error {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return nil
	}
	for _, key := range surfaceForms(alias) {
		if existing, ok := r.table[key]; ok && existing != canonical {
			return fmt.Errorf("%w: %q claimed by %s and %s", ErrAliasConflict, key, existing, canonical)
		}
		r.table[key] = canonical
	}
	return nil
}

// Normalize returns the canonical value for raw. Unknown names come back
// trimmed and upper-cased; empty input yields "".
func (r *Resolver) Normalize(raw string) string {
	if v, ok := r.lookup(raw); ok {
		return v
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Known reports whether raw resolves through the alias table.
func (r *Resolver) Known(raw string) bool {
	_, ok := r.lookup(raw)
	return ok
}

// Len returns the number of surface forms in the table.
func (r *Resolver) Len() int {
	return len(r.table)
}

func (r *Resolver) lookup(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	stripped := stripSpace(trimmed)
	candidates := [...]string{
		trimmed,
		strings.ToUpper(trimmed),
		strings.ToLower(trimmed),
		stripped,
		strings.ToUpper(stripped),
		strings.ToLower(stripped),
	}
	for _, key := range candidates {
		if v, ok := r.table[key]; ok {
			return v, true
		}
	}
	return "", false
}

func surfaceForms(s string) []string {
	forms := []string{s, strings.ToUpper(s), strings.ToLower(s)}
	if stripped := stripSpace(s); stripped != s {
		forms = append(forms, stripped, strings.ToUpper(stripped), strings.ToLower(stripped))
	}
	return forms
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

var defaultResolver = MustNewResolver(categoryOptions, tagAliases)

// Default returns the resolver built from the shop's static tables.
func Default() *Resolver {
	return defaultResolver
}

// Normalize resolves raw with the default resolver.
func Normalize(raw string) string {
	return defaultResolver.Normalize(raw)
}
