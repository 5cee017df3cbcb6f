package catalog_test

import (
	"testing"

	"github.com/petnolja/petcli/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestOptions_ValuesAreUniqueAndGrouped(t *testing.T) {
	groups := map[string]bool{}
	for _, g := range catalog.Groups() {
		groups[g] = true
	}

	seen := map[string]bool{}
	for _, opt := range catalog.Options() {
		assert.False(t, seen[opt.Value], "duplicate value %q", opt.Value)
		seen[opt.Value] = true
		assert.True(t, groups[opt.Group], "unknown group %q for %q", opt.Group, opt.Value)
		assert.NotEmpty(t, opt.Label)
	}
}

func TestOptions_ReturnsCopy(t *testing.T) {
	opts := catalog.Options()
	opts[0].Value = "MUTATED"
	opts[0].Aliases[0] = "mutated"

	again := catalog.Options()
	assert.NotEqual(t, "MUTATED", again[0].Value)
	assert.NotEqual(t, "mutated", again[0].Aliases[0])
}

func TestOptionsByGroup(t *testing.T) {
	pets := catalog.OptionsByGroup(catalog.GroupPet)
	assert.NotEmpty(t, pets)
	for _, opt := range pets {
		assert.Equal(t, catalog.GroupPet, opt.Group)
	}
	assert.Empty(t, catalog.OptionsByGroup("nope"))
}

func TestLookupAndLabel(t *testing.T) {
	opt, ok := catalog.Lookup("DOG")
	assert.True(t, ok)
	assert.Equal(t, "강아지", opt.Label)

	_, ok = catalog.Lookup("dog")
	assert.False(t, ok, "Lookup takes canonical values only")

	assert.Equal(t, "고양이", catalog.Label("CAT"))
	assert.Equal(t, "NOSEWORK", catalog.Label("NOSEWORK"))
}
