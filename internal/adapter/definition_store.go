// Package adapter contains filesystem and input-format adapters for the
// pintrace CLI.
package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	m "pintrace.dev/pkg/pintrace/internal/model"
	"pintrace.dev/pkg/pintrace/pkg"
)

// gridPattern matches grid declarations like "A:3x4". Several declarations
// may share one line; matching is case-insensitive.
var gridPattern = regexp.MustCompile(`(?i)([A-Z]):([0-9]+)x([0-9]+)`)

// e2eSeparators splits the e2epins directive payload into names.
var e2eSeparators = regexp.MustCompile(`[,\s]+`)

const e2eDirective = "e2epins:"

// DefinitionStore reads the shared pinout definition input that declares
// surfaces, the e2e pin set and permanent wiring.
type DefinitionStore interface {
	Load(path m.Path) (m.Definition, error)
}

type definitionStore struct{}

// NewDefinitionStore creates a DefinitionStore backed by the local filesystem.
func NewDefinitionStore() DefinitionStore {
	return &definitionStore{}
}

func (s *definitionStore) Load(path m.Path) (m.Definition, error) {
	content, err := os.ReadFile(string(path))
	if err != nil {
		return m.Definition{}, fmt.Errorf("read definition %s: %w", path, err)
	}

	return parseDefinition(path, string(content))
}

func parseDefinition(path m.Path, text string) (m.Definition, error) {
	definition := m.Definition{Path: path}
	e2ePins := pkg.NewOrderedSet[string]()
	sawDirective := false

	for number, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(strings.ToLower(line), e2eDirective) {
			if sawDirective {
				slog.Warn("repeated e2epins directive, appending",
					"path", path, "line", number+1)
			}

			sawDirective = true

			for _, name := range e2eSeparators.Split(line[len(e2eDirective):], -1) {
				if name = strings.TrimSpace(name); name != "" {
					e2ePins.Add(strings.ToUpper(name))
				}
			}

			continue
		}

		if matches := gridPattern.FindAllStringSubmatch(line, -1); len(matches) > 0 {
			// Duplicate designators pass through; the registry rejects
			// them with file-level context when the workflow defines them.
			for _, match := range matches {
				designator := strings.ToUpper(match[1])
				columns, _ := strconv.Atoi(match[2])
				rows, _ := strconv.Atoi(match[3])

				definition.Surfaces = append(definition.Surfaces, m.Surface{
					Designator: designator,
					Columns:    columns,
					Rows:       rows,
				})
			}

			continue
		}

		// Everything else is a permanent wiring line, resolved later once
		// every surface is known.
		definition.Links = append(definition.Links, m.Line{Number: number + 1, Text: line})
	}

	definition.E2EPins = e2ePins.Items()

	return definition, nil
}
