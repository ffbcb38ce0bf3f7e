package envline

import (
	"encoding/json"
	"sort"
)

type ChangeKind int

const (
	Added ChangeKind = iota
	Updated
	Removed
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// MarshalJSON renders the kind by name, not by ordinal.
func (k ChangeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Change is one semantic difference between two documents, keyed by
// variable name. Before is set for Updated and Removed, After for
// Added and Updated.
type Change struct {
	Kind   ChangeKind `json:"kind"`
	Key    string     `json:"key"`
	Before string     `json:"before,omitempty"`
	After  string     `json:"after,omitempty"`
}

// Diff compares the key/value projections of two line sequences and
// returns one Change per key whose projected value differs, ordered by
// key (byte-wise, case-sensitive). Comments, blank lines, and unknown
// lines never contribute.
func Diff(before, after []Line) []Change {
	b := project(before)
	a := project(after)

	keys := make([]string, 0, len(b)+len(a))
	for k := range b {
		keys = append(keys, k)
	}
	for k := range a {
		if _, dup := b[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var changes []Change
	for _, k := range keys {
		bv, inBefore := b[k]
		av, inAfter := a[k]
		switch {
		case inBefore && !inAfter:
			changes = append(changes, Change{Kind: Removed, Key: k, Before: bv})
		case !inBefore && inAfter:
			changes = append(changes, Change{Kind: Added, Key: k, After: av})
		case bv != av:
			changes = append(changes, Change{Kind: Updated, Key: k, Before: bv, After: av})
		}
	}
	return changes
}

// project collapses a line sequence to a key-to-value map. On
// duplicate keys the last occurrence in document order wins; the diff
// is deliberately lossy for duplicated keys.
func project(lines []Line) map[string]string {
	m := make(map[string]string)
	for _, kv := range KeyValues(lines) {
		m[kv.Key] = kv.Value
	}
	return m
}
