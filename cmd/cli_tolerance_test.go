package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCLIArgs_RewritesCommonFlagSyntax(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"-category", "dog", "json"})

	assert.Equal(t, []string{"--category", "dog", "--json"}, args)
	assert.NotEmpty(t, notes)
}

func TestNormalizeCLIArgs_RewritesKeyValueToken(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"category=dog", "--in-stock"})

	assert.Equal(t, []string{"--category=dog", "--in-stock"}, args)
	assert.Len(t, notes, 1)
}

func TestNormalizeCLIArgs_RewritesTypoFlag(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"--categroy", "dog"})

	assert.Equal(t, []string{"--category", "dog"}, args)
	assert.NotEmpty(t, notes)
}

func TestNormalizeCLIArgs_RewritesFlagAlias(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"items", "--search", "chicken", "--max", "20000"})

	assert.Equal(t, []string{"items", "--query", "chicken", "--max-price", "20000"}, args)
	assert.Len(t, notes, 2)
}

func TestNormalizeCLIArgs_RewritesCommandTypo(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"categoriess", "--counts"})

	assert.Equal(t, []string{"categories", "--counts"}, args)
	assert.NotEmpty(t, notes)
}

func TestNormalizeCLIArgs_RewritesBareFlagOnlyForCategories(t *testing.T) {
	args, _ := normalizeCLIArgs([]string{"categories", "counts"})
	assert.Equal(t, []string{"categories", "--counts"}, args)

	args, notes := normalizeCLIArgs([]string{"normalize", "count", "shop"})
	assert.Equal(t, []string{"normalize", "count", "shop"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_LeavesFlagValuesAlone(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"survey", "--activity", "calm", "--personality", "shy", "--sociability", "selective"})

	assert.Equal(t, []string{"survey", "--activity", "calm", "--personality", "shy", "--sociability", "selective"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_DoesNotRewriteCompletionPositionalArgs(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"completion", "zsh"})

	assert.Equal(t, []string{"completion", "zsh"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_DoesNotRewriteHelpCommandArgAsFlag(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"help", "items"})

	assert.Equal(t, []string{"help", "items"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_RespectsDoubleDashBoundary(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"normalize", "--", "category", "dog"})

	assert.Equal(t, []string{"normalize", "--", "category", "dog"}, args)
	assert.Empty(t, notes)
}

func TestNormalizeCLIArgs_LeavesKnownShorthandUntouched(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"-c", "json", "-n", "5", "-v"})

	assert.Equal(t, []string{"-c", "json", "-n", "5", "-v"}, args)
	assert.Empty(t, notes)
}

func TestExplainCLIError_UnknownFlagIncludesSuggestionAndExamples(t *testing.T) {
	msg := explainCLIError(parseItemFlags("--categroy", "dog"))

	assert.Contains(t, msg, "Try `--category`.")
	assert.Contains(t, msg, "petcli --category dog --in-stock")
	assert.Contains(t, msg, "petcli --min-price 10000 --sort price-asc")
}

func TestExplainCLIError_UnknownCommandIncludesSuggestionAndExamples(t *testing.T) {
	msg := explainCLIError(errors.New("unknown command \"categries\" for \"petcli\""))

	assert.Contains(t, msg, "Did you mean `categories`?")
	assert.Contains(t, msg, "petcli items --category 강아지")
	assert.Contains(t, msg, "petcli categories")
}

func TestClosestMatch(t *testing.T) {
	got, ok := closestMatch("limt", []string{"sort", "limit", "query"}, 2)
	assert.True(t, ok)
	assert.Equal(t, "limit", got)

	got, ok = closestMatch("categroy", []string{"category", "categories"}, 2)
	assert.True(t, ok)
	assert.Equal(t, "category", got)

	_, ok = closestMatch("spaceship", []string{"items", "survey"}, 2)
	assert.False(t, ok)
}

func TestClosestMatch_TiesPickFirstAlphabetically(t *testing.T) {
	got, ok := closestMatch("itme", []string{"time", "item"}, 2)
	assert.True(t, ok)
	assert.Equal(t, "item", got)
}

func TestCommandFlags_ReadsRegisteredFlags(t *testing.T) {
	flags := commandFlags()

	assert.True(t, flags.long["category"])
	assert.True(t, flags.long["pet-type"])
	assert.True(t, flags.long["count"])
	assert.False(t, flags.long["in-stock"])
	assert.False(t, flags.long["counts"])
	assert.False(t, flags.long["help"])
	assert.True(t, flags.short['c'])
	assert.True(t, flags.short['n'])
	assert.False(t, flags.short['v'])
}

func TestFlagTable_ResolveAliasesAndSeparators(t *testing.T) {
	flags := commandFlags()

	for raw, want := range map[string]string{
		"min_price":  "min-price",
		"KEYWORD":    "query",
		"species":    "pet-type",
		"sellstatus": "sell-status",
	} {
		got, ok := flags.resolve(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := flags.resolve("warp-drive")
	assert.False(t, ok)
}

func TestCommandNames_IncludesLazyCobraCommands(t *testing.T) {
	names := commandNames()

	for _, want := range []string{"help", "completion", "items", "item", "categories", "normalize", "survey", "tui"} {
		assert.Contains(t, names, want)
	}
}

func TestNormalizeCLIArgs_RewritesSurveyFlagTypos(t *testing.T) {
	args, notes := normalizeCLIArgs([]string{"survey", "--personalty", "shy", "-pet", "cat", "--shop"})

	assert.Equal(t, []string{"survey", "--personality", "shy", "--pet-type", "cat", "--shop"}, args)
	assert.Len(t, notes, 2)
}

func TestNormalizeCLIArgs_ValueAfterTrailingFlagIsNotSwallowed(t *testing.T) {
	args, _ := normalizeCLIArgs([]string{"normalize", "dog", "--limit"})
	assert.Equal(t, []string{"normalize", "dog", "--limit"}, args)
}
