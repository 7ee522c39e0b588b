// Package session reads MED-PC session files into a field mapping.
//
// A line that does not start with whitespace opens a field: the text before
// the first ':' is the field name and the rest is its value. Lines starting
// with whitespace continue the previous field, which is how arrays such as W
// span many lines. The Group field may carry extra "/name:value" subfields.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// EventArrayField is the field holding the packed event array.
const EventArrayField = "W"

// ErrNoEventArray is returned by EventArray when the W field is missing.
var ErrNoEventArray = errors.New("session has no W event array")

// Header is the parsed field mapping of one session file.
type Header struct {
	Path   string            // Source file, empty when parsed from a reader
	Fields map[string]string // Field name -> value
	order  []string
}

// LoadFile opens and parses a session file.
func LoadFile(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	defer f.Close()

	h, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	h.Path = path
	return h, nil
}

// Parse reads session fields from r.
func Parse(r io.Reader) (*Header, error) {
	h := &Header{Fields: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	current := ""
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if current == "" {
				return nil, fmt.Errorf("line %d: continuation line before any field", lineNum)
			}
			h.appendValue(current, strings.Join(strings.Fields(line), " "))
			continue
		}

		name, value, _ := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("line %d: empty field name", lineNum)
		}
		h.set(name, strings.TrimSpace(value))
		current = name
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	h.splitGroup()
	return h, nil
}

func (h *Header) set(name, value string) {
	if _, exists := h.Fields[name]; !exists {
		h.order = append(h.order, name)
	}
	h.Fields[name] = value
}

func (h *Header) appendValue(name, value string) {
	if value == "" {
		return
	}
	if existing := h.Fields[name]; existing != "" {
		value = existing + " " + value
	}
	h.Fields[name] = value
}

// splitGroup turns "Group: A/Dose:1mg/Day:3" into Group=A, Dose=1mg, Day=3.
func (h *Header) splitGroup() {
	group, ok := h.Fields["Group"]
	if !ok || !strings.Contains(group, "/") {
		return
	}

	parts := strings.Split(group, "/")
	h.Fields["Group"] = strings.TrimSpace(parts[0])
	for _, part := range parts[1:] {
		name, value, _ := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		h.set(name, strings.TrimSpace(value))
	}
}

// Field returns the value of a field.
func (h *Header) Field(name string) (string, bool) {
	v, ok := h.Fields[name]
	return v, ok
}

// Names returns field names in the order they first appeared.
func (h *Header) Names() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// EventArray returns the raw W field.
func (h *Header) EventArray() (string, error) {
	w, ok := h.Fields[EventArrayField]
	if !ok {
		return "", ErrNoEventArray
	}
	return w, nil
}

// Subject returns the Subject field.
func (h *Header) Subject() string { return h.Fields["Subject"] }

// Experiment returns the Experiment field.
func (h *Header) Experiment() string { return h.Fields["Experiment"] }

// Group returns the Group field without its subfields.
func (h *Header) Group() string { return h.Fields["Group"] }

// Box returns the Box field.
func (h *Header) Box() string { return h.Fields["Box"] }

// StartDate returns the Start Date field.
func (h *Header) StartDate() string { return h.Fields["Start Date"] }
