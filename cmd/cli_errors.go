package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/petnolja/petcli/internal/api"
	"github.com/petnolja/petcli/internal/catalog"
	"github.com/petnolja/petcli/internal/config"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess is returned when the command succeeds.
	ExitSuccess = 0
	// ExitNotFound is returned when the requested items are not available.
	ExitNotFound = 1
	// ExitInvalidArgs is returned when the command input is invalid.
	ExitInvalidArgs = 2
	// ExitUpstream is returned when the shop backend fails.
	ExitUpstream = 3
	// ExitInternal is returned for unexpected internal failures.
	ExitInternal = 4
)

// errorKind pairs the machine-readable code with its process exit status.
type errorKind struct {
	code string
	exit int
}

var (
	kindInvalidArgs = errorKind{code: "INVALID_ARGS", exit: ExitInvalidArgs}
	kindNotFound    = errorKind{code: "NOT_FOUND", exit: ExitNotFound}
	kindUpstream    = errorKind{code: "UPSTREAM_ERROR", exit: ExitUpstream}
	kindInternal    = errorKind{code: "INTERNAL_ERROR", exit: ExitInternal}
)

var upstreamHints = []string{"Retry in a moment.", "Check --api-url or " + config.EnvAPIURL + "."}

type cliError struct {
	Code        string
	Message     string
	Suggestions []string
	ExitCode    int

	cause error
}

func (e *cliError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *cliError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func newCLIError(kind errorKind, message string, cause error, suggestions ...string) *cliError {
	return &cliError{
		Code:        kind.code,
		Message:     message,
		Suggestions: suggestions,
		ExitCode:    kind.exit,
		cause:       cause,
	}
}

func invalidArgsError(message string, suggestions ...string) error {
	return newCLIError(kindInvalidArgs, message, nil, suggestions...)
}

func notFoundError(message string, suggestions ...string) error {
	return newCLIError(kindNotFound, message, nil, suggestions...)
}

// upstreamError reports a failed backend call. Causes the classifier
// recognises keep their own code and hints; anything else is an upstream
// failure.
func upstreamError(action string, err error) error {
	wrapped := fmt.Errorf("%s: %w", action, err)
	if known := classifyKnownError(wrapped); known != nil {
		return known
	}
	return newCLIError(kindUpstream, wrapped.Error(), err, upstreamHints...)
}

// classifyCLIError maps any error returned by a command onto the error
// envelope. Typed causes are inspected first. Cobra reports usage problems as
// plain strings, so those are matched by message last.
func classifyCLIError(err error) *cliError {
	if err == nil {
		return nil
	}

	var typed *cliError
	if errors.As(err, &typed) {
		return typed
	}
	if known := classifyKnownError(err); known != nil {
		return known
	}
	if usage := classifyUsageError(err); usage != nil {
		return usage
	}
	return newCLIError(kindInternal, strings.TrimSpace(err.Error()), err,
		"Run `petcli --help` for usage details.")
}

func classifyKnownError(err error) *cliError {
	msg := strings.TrimSpace(err.Error())

	var (
		fieldErrs   validator.ValidationErrors
		missingFlag *pflag.NotExistError
		needsValue  *pflag.ValueRequiredError
		badValue    *pflag.InvalidValueError
		badSyntax   *pflag.InvalidSyntaxError
		statusErr   *api.StatusError
		netErr      net.Error
		urlErr      *url.Error
	)

	switch {
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		fe := fieldErrs[0]
		return newCLIError(kindInvalidArgs, fe.Field()+" "+formatValidationError(fe), err)

	case errors.As(err, &missingFlag):
		return newCLIError(kindInvalidArgs, msg, err, unknownFlagHints(missingFlag.GetSpecifiedName())...)

	case errors.As(err, &needsValue):
		return newCLIError(kindInvalidArgs, msg, err, flagValueHint(needsValue.GetFlag()))

	case errors.As(err, &badValue):
		return newCLIError(kindInvalidArgs, msg, err, flagValueHint(badValue.GetFlag()))

	case errors.As(err, &badSyntax):
		return newCLIError(kindInvalidArgs, msg, err, "Flags take the form --name or --name=value.")

	case errors.Is(err, api.ErrNotFound):
		return newCLIError(kindNotFound, msg, err,
			"List item IDs with `petcli items --json`.")

	case errors.As(err, &statusErr):
		return newCLIError(kindUpstream, msg, err, statusHints(statusErr.StatusCode)...)

	case errors.Is(err, api.ErrMalformedResponse):
		return newCLIError(kindUpstream, msg, err,
			"Check --api-url points at the shop backend, not a web page.")

	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return newCLIError(kindUpstream, msg, err,
			"Retry in a moment.",
			"Raise api.timeout in the config file or "+config.EnvTimeout+".")

	case errors.As(err, &urlErr):
		return newCLIError(kindUpstream, msg, err, upstreamHints...)

	case errors.Is(err, catalog.ErrAliasConflict),
		errors.Is(err, catalog.ErrDuplicateValue):
		return newCLIError(kindInternal, "category alias table is inconsistent: "+msg, err)
	}
	return nil
}

func statusHints(status int) []string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return []string{"Check --token or " + config.EnvAPIToken + "."}
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return []string{"Retry in a moment."}
	default:
		return upstreamHints
	}
}

// usagePattern matches a cobra usage error message that carries no type.
type usagePattern struct {
	marker string
	hints  func(msg string) []string
}

var usagePatterns = []usagePattern{
	{marker: "unknown command", hints: unknownCommandHints},
	{marker: "requires at least", hints: argCountHints},
	{marker: "accepts ", hints: argCountHints},
	{marker: "required flag(s)", hints: argCountHints},
}

func classifyUsageError(err error) *cliError {
	msg := strings.TrimSpace(err.Error())
	for _, p := range usagePatterns {
		if strings.Contains(msg, p.marker) {
			return newCLIError(kindInvalidArgs, msg, err, p.hints(msg)...)
		}
	}
	return nil
}

func unknownCommandHints(msg string) []string {
	hints := []string{
		"petcli items --category 강아지",
		"petcli categories",
	}
	if bad := quotedAfter(msg, "unknown command"); bad != "" {
		if name, ok := closestMatch(strings.ToLower(bad), commandNames(), 2); ok {
			hints = append([]string{fmt.Sprintf("Did you mean `%s`?", name)}, hints...)
		}
	}
	return hints
}

func unknownFlagHints(name string) []string {
	hints := []string{
		"petcli --category dog --in-stock",
		"petcli --min-price 10000 --sort price-asc",
	}
	if canonical, ok := commandFlags().resolve(name); ok {
		hints = append([]string{fmt.Sprintf("Try `--%s`.", canonical)}, hints...)
	}
	return hints
}

func argCountHints(string) []string {
	return []string{"petcli item 42", "petcli normalize 멍멍이 cat"}
}

// flagExamples shows a valid invocation for flags whose values are easy to get
// wrong.
var flagExamples = map[string]string{
	"category":    "petcli --category 강아지,snack",
	"sell-status": "petcli --sell-status SELL",
	"min-price":   "petcli --min-price 10,000",
	"max-price":   "petcli --max-price 30000",
	"sort":        "petcli --sort price-asc",
	"limit":       "petcli --limit 10",
	"count":       "petcli survey --shop --count 3",
	"group":       "petcli categories --group pet",
}

func flagValueHint(f *pflag.Flag) string {
	if f == nil {
		return "Run `petcli --help` for flag usage."
	}
	if example, ok := flagExamples[f.Name]; ok {
		return example
	}
	return fmt.Sprintf("Run `petcli --help` for --%s usage.", f.Name)
}

// quotedAfter returns the first quoted or bare word following marker.
func quotedAfter(msg, marker string) string {
	idx := strings.Index(msg, marker)
	if idx == -1 {
		return ""
	}
	rest := strings.TrimLeft(msg[idx+len(marker):], ": ")
	if rest == "" {
		return ""
	}
	if q := rest[0]; q == '"' || q == '`' || q == '\'' {
		if end := strings.IndexByte(rest[1:], q); end >= 0 {
			return rest[1 : end+1]
		}
	}
	if fields := strings.Fields(rest); len(fields) > 0 {
		return strings.Trim(fields[0], "\"`'")
	}
	return ""
}

type jsonErrorPayload struct {
	Error jsonErrorBody `json:"error"`
}

type jsonErrorBody struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	ExitCode    int      `json:"exitCode"`
}

func printCLIErrorJSON(w io.Writer, err *cliError) error {
	if err == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(jsonErrorPayload{
		Error: jsonErrorBody{
			Code:        err.Code,
			Message:     err.Message,
			Suggestions: err.Suggestions,
			ExitCode:    err.ExitCode,
		},
	})
}

func formatCLIErrorText(err *cliError) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "error[%s]: %s", strings.ToLower(err.Code), err.Message)
	if len(err.Suggestions) > 0 {
		b.WriteString("\nsuggestions:")
		for _, s := range err.Suggestions {
			b.WriteString("\n  " + s)
		}
	}
	return b.String()
}

func explainCLIError(err error) string {
	return formatCLIErrorText(classifyCLIError(err))
}
