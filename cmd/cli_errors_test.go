package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/petnolja/petcli/internal/api"
	"github.com/petnolja/petcli/internal/catalog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCLIErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	err := printCLIErrorJSON(&buf, classifyCLIError(invalidArgsError("bad flag", "petcli --category dog")))
	require.NoError(t, err)

	var payload map[string]any
	err = json.Unmarshal(buf.Bytes(), &payload)
	require.NoError(t, err)

	errorObject, ok := payload["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "INVALID_ARGS", errorObject["code"])
	assert.Equal(t, "bad flag", errorObject["message"])
	assert.EqualValues(t, ExitInvalidArgs, errorObject["exitCode"])
}

func TestFormatCLIErrorText(t *testing.T) {
	text := formatCLIErrorText(classifyCLIError(notFoundError("no items match your filters", "Relax filters.")))

	assert.Equal(t, "error[not_found]: no items match your filters\nsuggestions:\n  Relax filters.", text)
	assert.Empty(t, formatCLIErrorText(nil))
}

func TestClassifyCLIError_UsageMessages(t *testing.T) {
	tests := []string{
		`unknown command "x" for "petcli"`,
		"accepts 1 arg(s), received 0",
		"requires at least 1 arg(s), only received 0",
	}
	for _, msg := range tests {
		t.Run(msg, func(t *testing.T) {
			got := classifyCLIError(errors.New(msg))
			assert.Equal(t, "INVALID_ARGS", got.Code)
			assert.Equal(t, ExitInvalidArgs, got.ExitCode)
			assert.Equal(t, msg, got.Message)
		})
	}
}

func TestClassifyCLIError_UntypedMessagesAreInternal(t *testing.T) {
	for _, msg := range []string{
		"item 7 not found",
		"fetching items: unexpected status 502",
		"something odd",
	} {
		got := classifyCLIError(errors.New(msg))
		assert.Equal(t, "INTERNAL_ERROR", got.Code, msg)
		assert.Equal(t, ExitInternal, got.ExitCode, msg)
	}
}

func TestClassifyCLIError_TypedCauses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		exit int
		hint string
	}{
		{
			name: "404 status",
			err:  fmt.Errorf("fetching item: %w", &api.StatusError{StatusCode: http.StatusNotFound, URL: "http://shop/items/7"}),
			code: "NOT_FOUND", exit: ExitNotFound,
			hint: "List item IDs with `petcli items --json`.",
		},
		{
			name: "bare not-found sentinel",
			err:  fmt.Errorf("item 7: %w", api.ErrNotFound),
			code: "NOT_FOUND", exit: ExitNotFound,
		},
		{
			name: "server error",
			err:  fmt.Errorf("fetching items: %w", &api.StatusError{StatusCode: http.StatusBadGateway, URL: "http://shop/items"}),
			code: "UPSTREAM_ERROR", exit: ExitUpstream,
			hint: "Retry in a moment.",
		},
		{
			name: "unauthorized",
			err:  &api.StatusError{StatusCode: http.StatusUnauthorized, URL: "http://shop/items"},
			code: "UPSTREAM_ERROR", exit: ExitUpstream,
			hint: "Check --token or PETCLI_API_TOKEN.",
		},
		{
			name: "client error",
			err:  &api.StatusError{StatusCode: http.StatusBadRequest, URL: "http://shop/items"},
			code: "UPSTREAM_ERROR", exit: ExitUpstream,
			hint: "Check --api-url or PETCLI_API_URL.",
		},
		{
			name: "malformed body",
			err:  fmt.Errorf("fetching items: %w", fmt.Errorf("decoding response: %w", api.ErrMalformedResponse)),
			code: "UPSTREAM_ERROR", exit: ExitUpstream,
			hint: "Check --api-url points at the shop backend, not a web page.",
		},
		{
			name: "deadline",
			err:  fmt.Errorf("executing request: %w", context.DeadlineExceeded),
			code: "UPSTREAM_ERROR", exit: ExitUpstream,
			hint: "Raise api.timeout in the config file or PETCLI_TIMEOUT.",
		},
		{
			name: "connection refused",
			err:  &url.Error{Op: "Get", URL: "http://127.0.0.1:1/items", Err: errors.New("connection refused")},
			code: "UPSTREAM_ERROR", exit: ExitUpstream,
			hint: "Check --api-url or PETCLI_API_URL.",
		},
		{
			name: "alias conflict",
			err:  fmt.Errorf("%w: %q claimed by DOG and CAT", catalog.ErrAliasConflict, "pet"),
			code: "INTERNAL_ERROR", exit: ExitInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyCLIError(tt.err)

			require.NotNil(t, got)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.exit, got.ExitCode)
			if tt.hint != "" {
				assert.Contains(t, got.Suggestions, tt.hint)
			}
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassifyCLIError_AliasTableFromResolver(t *testing.T) {
	_, err := catalog.NewResolver([]catalog.CategoryOption{
		{Value: "DOG", Aliases: []string{"puppy"}},
		{Value: "CAT", Aliases: []string{"Puppy"}},
	}, nil)
	require.Error(t, err)

	got := classifyCLIError(err)

	assert.Equal(t, "INTERNAL_ERROR", got.Code)
	assert.Contains(t, got.Message, "category alias table is inconsistent")
	assert.ErrorIs(t, got, catalog.ErrAliasConflict)
}

func TestClassifyCLIError_ValidationErrors(t *testing.T) {
	input := struct {
		Limit int `flag:"limit" validate:"gte=0"`
	}{Limit: -1}

	got := classifyCLIError(inputValidator.Struct(input))

	assert.Equal(t, "INVALID_ARGS", got.Code)
	assert.Equal(t, "--limit must be greater than or equal to 0", got.Message)
}

func TestValidateInput_AppendsSuggestions(t *testing.T) {
	input := struct {
		Sort string `flag:"sort" validate:"oneof=price-asc price-desc"`
	}{Sort: "cheapest"}

	err := validateInput(input, "petcli --sort price-asc")

	got := classifyCLIError(err)
	assert.Equal(t, ExitInvalidArgs, got.ExitCode)
	assert.Equal(t, `--sort must be one of: price-asc, price-desc (got "cheapest")`, got.Message)
	assert.Equal(t, []string{"petcli --sort price-asc"}, got.Suggestions)
	assert.NoError(t, validateInput(struct{}{}))
}

func parseItemFlags(args ...string) error {
	fs := pflag.NewFlagSet("petcli", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringSlice("category", nil, "")
	fs.Int("limit", 0, "")
	return fs.Parse(args)
}

func TestClassifyCLIError_FlagParseErrors(t *testing.T) {
	unknown := classifyCLIError(parseItemFlags("--categroy", "dog"))
	assert.Equal(t, "INVALID_ARGS", unknown.Code)
	assert.Equal(t, "unknown flag: --categroy", unknown.Message)
	assert.Equal(t, "Try `--category`.", unknown.Suggestions[0])

	missing := classifyCLIError(parseItemFlags("--limit"))
	assert.Equal(t, ExitInvalidArgs, missing.ExitCode)
	assert.Equal(t, []string{"petcli --limit 10"}, missing.Suggestions)

	invalid := classifyCLIError(parseItemFlags("--limit", "ten"))
	assert.Equal(t, ExitInvalidArgs, invalid.ExitCode)
	assert.Contains(t, invalid.Message, `invalid argument "ten"`)
	assert.Equal(t, []string{"petcli --limit 10"}, invalid.Suggestions)

	syntax := classifyCLIError(parseItemFlags("---limit"))
	assert.Equal(t, ExitInvalidArgs, syntax.ExitCode)
	assert.Equal(t, "bad flag syntax: ---limit", syntax.Message)
}

func TestClassifyCLIError_KeepsTypedError(t *testing.T) {
	err := upstreamError("fetching item", errors.New("boom"))

	got := classifyCLIError(err)

	assert.Equal(t, "UPSTREAM_ERROR", got.Code)
	assert.Equal(t, "fetching item: boom", got.Message)
	assert.Contains(t, got.Suggestions, "Check --api-url or PETCLI_API_URL.")
	assert.Nil(t, classifyCLIError(nil))
}

func TestUpstreamError_RefinesByCause(t *testing.T) {
	notFound := classifyCLIError(upstreamError("fetching item", &api.StatusError{StatusCode: http.StatusNotFound}))
	assert.Equal(t, "NOT_FOUND", notFound.Code)

	forbidden := classifyCLIError(upstreamError("fetching items", &api.StatusError{StatusCode: http.StatusForbidden}))
	assert.Equal(t, "UPSTREAM_ERROR", forbidden.Code)
	assert.Equal(t, []string{"Check --token or PETCLI_API_TOKEN."}, forbidden.Suggestions)
	assert.Contains(t, forbidden.Message, "fetching items: unexpected status 403")
}
