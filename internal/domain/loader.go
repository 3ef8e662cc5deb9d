package domain

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	m "pintrace.dev/pkg/pintrace/internal/model"
	"pintrace.dev/pkg/pintrace/pkg"
)

// tokenSeparators splits a connection line into pin tokens. Anything
// outside letters, digits and the +/- polarity suffixes separates tokens,
// so commas, semicolons and runs of whitespace all work.
var tokenSeparators = regexp.MustCompile(`[^A-Za-z0-9+\-]+`)

// gridDirectivePattern recognizes a stray grid definition (X:CxR) inside a
// state file; such lines belong to the definition input and are skipped.
var gridDirectivePattern = regexp.MustCompile(`(?i)^[A-Z]:[0-9]+x[0-9]+$`)

// StateLoader parses switch-position data into connection tuples.
type StateLoader interface {
	// Load parses a whole state file into tuples, one per connection
	// line, preserving line order. designator is the surface the file
	// belongs to; bare numeric tokens are qualified with it. path is used
	// for error and log context only.
	Load(path m.Path, designator string, text string) ([]m.Tuple, error)

	// ParseLine parses one connection line. Duplicate tokens collapse
	// preserving first occurrence. A line that nets a single pin (a
	// self-pair like "A1,A1", or a stray singleton) is a no-op: it is
	// logged and a nil tuple is returned. This leniency is deliberate so
	// degenerate lines do not abort the run.
	ParseLine(path m.Path, number int, designator, line string) (m.Tuple, error)
}

type stateLoader struct {
	registry Registry
}

// NewStateLoader creates a StateLoader resolving tokens via registry.
func NewStateLoader(registry Registry) StateLoader {
	return &stateLoader{registry: registry}
}

func (l *stateLoader) Load(path m.Path, designator string, text string) ([]m.Tuple, error) {
	var tuples []m.Tuple

	for number, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Definition directives occasionally end up in state files when
		// users copy data.csv around; they carry no connection data.
		if gridDirectivePattern.MatchString(line) || isE2EDirective(line) {
			continue
		}

		tuple, err := l.ParseLine(path, number+1, designator, line)
		if err != nil {
			return nil, err
		}

		if tuple != nil {
			tuples = append(tuples, tuple)
		}
	}

	return tuples, nil
}

func (l *stateLoader) ParseLine(path m.Path, number int, designator, line string) (m.Tuple, error) {
	seen := pkg.NewOrderedSet[m.Pin]()

	for _, token := range tokenSeparators.Split(line, -1) {
		if token == "" {
			continue
		}

		if isNumeric(token) {
			if designator == "" {
				return nil, fmt.Errorf("%s:%d: bare pin number %q has no surface context: %w",
					path, number, token, ErrMalformedTuple)
			}

			token = designator + token
		}

		pin, err := l.registry.Resolve(token)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, number, err)
		}

		seen.Add(pin)
	}

	if seen.Len() == 0 {
		return nil, fmt.Errorf("%s:%d: no pin tokens in %q: %w", path, number, line, ErrMalformedTuple)
	}

	if seen.Len() == 1 {
		slog.Warn("ignoring single-pin connection line",
			"path", path, "line", number, "pin", seen.Items()[0])

		return nil, nil
	}

	return m.Tuple(seen.Items()), nil
}

// isE2EDirective reports whether the line is an e2epins definition.
func isE2EDirective(line string) bool {
	return strings.HasPrefix(strings.ToLower(line), "e2epins:")
}

func isNumeric(token string) bool {
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}

	return token != ""
}
