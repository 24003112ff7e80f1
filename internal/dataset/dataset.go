// Package dataset reads the static project dataset the gallery is built from.
//
// Two shapes are accepted, in JSON or YAML:
//
//	[{"github_username": "ada", "Projects": [{"title": "...", ...}]}]
//	{"ada": [{"title": "...", ...}]}
//
// The list form keeps contributor order. The mapping form has no order of its
// own, so contributors are sorted by username.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"showcase/internal/gallery"
	"showcase/internal/logging"

	"gopkg.in/yaml.v3"
)

//go:embed sample.json
var sample []byte

// Format identifies the encoding of a dataset.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Sample returns the contributor groups of the embedded sample dataset.
func Sample() []gallery.ContributorGroup {
	groups, err := Decode(sample, FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("embedded sample dataset is invalid: %v", err))
	}
	return groups
}

// Load reads a dataset file. An empty path returns the embedded sample.
func Load(path string) ([]gallery.ContributorGroup, error) {
	if path == "" {
		logging.Dataset("no dataset path configured, using embedded sample")
		return Sample(), nil
	}

	timer := logging.StartTimer(logging.CategoryDataset, "load "+path)
	defer timer.Stop()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	groups, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode dataset %s: %w", path, err)
	}

	logging.Dataset("loaded %d contributors, %d projects from %s", len(groups), countProjects(groups), path)
	if issues := Inspect(groups); len(issues) > 0 {
		logging.DatasetWarn("%s has %d issue(s), run showcase validate for details", path, len(issues))
	}
	return groups, nil
}

// Decode parses a dataset in the given format.
func Decode(data []byte, format Format) ([]gallery.ContributorGroup, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatJSON:
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("unknown dataset format %q", format)
	}
}

func decodeJSON(data []byte) ([]gallery.ContributorGroup, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '{' {
		var byUser map[string][]gallery.Project
		if err := json.Unmarshal(trimmed, &byUser); err != nil {
			return nil, fmt.Errorf("invalid contributor mapping: %w", err)
		}
		return fromMapping(byUser), nil
	}

	var groups []gallery.ContributorGroup
	if err := json.Unmarshal(trimmed, &groups); err != nil {
		return nil, fmt.Errorf("invalid contributor list: %w", err)
	}
	return groups, nil
}

func decodeYAML(data []byte) ([]gallery.ContributorGroup, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	doc := root.Content[0]
	switch doc.Kind {
	case yaml.MappingNode:
		var byUser map[string][]gallery.Project
		if err := doc.Decode(&byUser); err != nil {
			return nil, fmt.Errorf("invalid contributor mapping: %w", err)
		}
		return fromMapping(byUser), nil
	case yaml.SequenceNode:
		var groups []gallery.ContributorGroup
		if err := doc.Decode(&groups); err != nil {
			return nil, fmt.Errorf("invalid contributor list: %w", err)
		}
		return groups, nil
	default:
		return nil, fmt.Errorf("dataset must be a list or a mapping, got %s", nodeKind(doc.Kind))
	}
}

func fromMapping(byUser map[string][]gallery.Project) []gallery.ContributorGroup {
	names := make([]string, 0, len(byUser))
	for name := range byUser {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]gallery.ContributorGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, gallery.ContributorGroup{Username: name, Projects: byUser[name]})
	}
	return groups
}

func countProjects(groups []gallery.ContributorGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Projects)
	}
	return n
}

func nodeKind(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind %d", k)
	}
}
