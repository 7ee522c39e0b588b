// Package eventcodes holds the event code table that maps the four-digit
// event id packed into each recorder token to a symbolic label.
//
// A Table is built once (from the embedded default or a YAML file) and is
// never modified afterwards, so a single table can be shared by every session
// decoded in a process.
package eventcodes

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// MaxID is the largest id that fits in the four low digits of a token.
const MaxID = 9999

//go:embed default.yaml
var defaultTable []byte

var (
	defaultOnce sync.Once
	defaultTab  *Table
	defaultErr  error
)

// Table is an immutable id -> label mapping.
type Table struct {
	version string
	labels  map[int]string
}

// tableFile is the on-disk YAML layout of a table.
type tableFile struct {
	Version string         `yaml:"version"`
	Codes   map[int]string `yaml:"codes"`
}

// New builds a table from a map. The map is copied.
// Ids must be within 0..MaxID and labels must be non-empty and unique.
func New(version string, codes map[int]string) (*Table, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("event code table has no codes")
	}

	labels := make(map[int]string, len(codes))
	seen := make(map[string]int, len(codes))
	for id, label := range codes {
		if id < 0 || id > MaxID {
			return nil, fmt.Errorf("event code %d out of range 0..%d", id, MaxID)
		}
		label = strings.TrimSpace(label)
		if label == "" {
			return nil, fmt.Errorf("event code %d has an empty label", id)
		}
		if other, dup := seen[label]; dup {
			return nil, fmt.Errorf("label %q used by codes %d and %d", label, other, id)
		}
		seen[label] = id
		labels[id] = label
	}

	return &Table{version: version, labels: labels}, nil
}

// Parse reads a table from YAML.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse event code table: %w", err)
	}
	return New(f.Version, f.Codes)
}

// LoadFile reads a table from a YAML file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event code table: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Default returns the embedded table. It is parsed once per process.
func Default() (*Table, error) {
	defaultOnce.Do(func() {
		defaultTab, defaultErr = Parse(defaultTable)
	})
	return defaultTab, defaultErr
}

// Load returns the table at path, or the embedded default when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Lookup returns the label for id.
func (t *Table) Lookup(id int) (string, bool) {
	label, ok := t.labels[id]
	return label, ok
}

// Version returns the version string declared by the table source.
func (t *Table) Version() string {
	return t.version
}

// Len returns the number of codes.
func (t *Table) Len() int {
	return len(t.labels)
}

// IDs returns every id in ascending order.
func (t *Table) IDs() []int {
	ids := make([]int, 0, len(t.labels))
	for id := range t.labels {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// HasLabel reports whether any code maps to label.
func (t *Table) HasLabel(label string) bool {
	for _, l := range t.labels {
		if l == label {
			return true
		}
	}
	return false
}
