package riddle

import (
	"encoding/json"
	"sort"
)

// Map records, for each riddle, the set of equations it was reached from.
// Keys and solutions are canonical expression strings.
type Map struct {
	entries map[string]map[string]struct{}
}

// Entry is one riddle with its sorted solutions.
type Entry struct {
	Riddle    string   `json:"riddle"`
	Solutions []string `json:"solutions"`
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{entries: make(map[string]map[string]struct{})}
}

// Add records solution for riddle. Adding the same pair twice is a no-op.
func (m *Map) Add(riddle, solution string) {
	set, ok := m.entries[riddle]
	if !ok {
		set = make(map[string]struct{})
		m.entries[riddle] = set
	}
	set[solution] = struct{}{}
}

// Merge unions o into m.
func (m *Map) Merge(o *Map) {
	for r, sols := range o.entries {
		for s := range sols {
			m.Add(r, s)
		}
	}
}

// Len returns the number of riddles.
func (m *Map) Len() int { return len(m.entries) }

// Has reports whether riddle is in the map.
func (m *Map) Has(riddle string) bool {
	_, ok := m.entries[riddle]
	return ok
}

// Riddles returns the riddles in sorted order.
func (m *Map) Riddles() []string {
	out := make([]string, 0, len(m.entries))
	for r := range m.entries {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Solutions returns the sorted solutions of riddle, or nil.
func (m *Map) Solutions(riddle string) []string {
	set, ok := m.entries[riddle]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Entries returns every riddle with its solutions, sorted by riddle.
func (m *Map) Entries() []Entry {
	riddles := m.Riddles()
	out := make([]Entry, len(riddles))
	for i, r := range riddles {
		out[i] = Entry{Riddle: r, Solutions: m.Solutions(r)}
	}
	return out
}

// MarshalJSON encodes the map as a sorted list of entries.
func (m *Map) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Entries())
}

// UnmarshalJSON decodes the list written by MarshalJSON.
func (m *Map) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	m.entries = make(map[string]map[string]struct{}, len(entries))
	for _, e := range entries {
		for _, s := range e.Solutions {
			m.Add(e.Riddle, s)
		}
	}
	return nil
}
