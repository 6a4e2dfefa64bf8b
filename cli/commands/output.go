package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/lightblue-platform/lightblue-client-go/core"
)

// printJSON writes a decoded result to stdout: indented on a terminal,
// compact when piped or when --compact is set.
func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	if !a.compact && isTerminal(a.stdout) {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// handleRequestError reports an operation failure and maps it to an exit code.
func (a *App) handleRequestError(err error) error {
	var ce *core.ClientError
	if errors.As(err, &ce) && ce.Status != 0 {
		fmt.Fprintf(a.stderr, "Error: service returned %d: %s\n", ce.Status, ce.Body)
		return exitWithCode(ExitRequest, err)
	}

	switch {
	case errors.Is(err, core.ErrInvalidArgument):
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitWithCode(ExitValidation, err)
	case errors.Is(err, core.ErrConnection), errors.Is(err, core.ErrNetwork), errors.Is(err, core.ErrClosed):
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitWithCode(ExitNetwork, err)
	default:
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return exitWithCode(ExitRequest, err)
	}
}

// parseJSONFlag decodes a JSON flag value, returning nil for an empty flag.
func parseJSONFlag(name, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("invalid --%s JSON: %w", name, err)
	}
	return v, nil
}

// parseRangeFlag decodes a FROM:TO result window, returning nil for an
// empty flag.
func parseRangeFlag(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid --range %q: want FROM:TO, e.g. 0:49", raw)
	}
	from, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid --range start %q: %w", parts[0], err)
	}
	to, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid --range end %q: %w", parts[1], err)
	}
	return []int{from, to}, nil
}
