package envline

import (
	"regexp"
	"strings"
)

// Upsert returns a copy of lines with key set to value. Every existing
// key-value line carrying key is updated (duplicates stay duplicated,
// all set to the same value) and its verbatim cache cleared. When the
// key is absent a new line is inserted right after the last key-value
// line, or appended at the end if there is none. The input is never
// mutated.
func Upsert(lines []Line, key, value string) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)

	found := false
	lastKV := -1
	for i, ln := range out {
		kv, ok := ln.(KeyValue)
		if !ok {
			continue
		}
		lastKV = i
		if kv.Key == key {
			kv.Value = value
			kv.Raw = ""
			out[i] = kv
			found = true
		}
	}
	if found {
		return out
	}

	fresh := KeyValue{Key: key, Value: value}
	if lastKV == -1 {
		return append(out, fresh)
	}
	out = append(out, nil)
	copy(out[lastKV+2:], out[lastKV+1:])
	out[lastKV+1] = fresh
	return out
}

// Remove returns a copy of lines with every key-value line carrying
// key dropped. All other lines keep their relative order. Removing an
// absent key is a no-op.
func Remove(lines []Line, key string) []Line {
	out := make([]Line, 0, len(lines))
	for _, ln := range lines {
		if kv, ok := ln.(KeyValue); ok && kv.Key == key {
			continue
		}
		out = append(out, ln)
	}
	return out
}

// Rename returns a copy of lines with every key-value line carrying
// oldKey retargeted to newKey, verbatim caches cleared. Renaming an
// absent key is a no-op.
func Rename(lines []Line, oldKey, newKey string) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	for i, ln := range out {
		if kv, ok := ln.(KeyValue); ok && kv.Key == oldKey {
			kv.Key = newKey
			kv.Raw = ""
			out[i] = kv
		}
	}
	return out
}

// KeyValues returns the key-value lines only, in document order,
// duplicates included.
func KeyValues(lines []Line) []KeyValue {
	var kvs []KeyValue
	for _, ln := range lines {
		if kv, ok := ln.(KeyValue); ok {
			kvs = append(kvs, kv)
		}
	}
	return kvs
}

// DuplicateKeys returns the keys that appear on two or more key-value
// lines, ordered by where the duplication was first detected.
func DuplicateKeys(lines []Line) []string {
	seen := make(map[string]int)
	var dups []string
	for _, kv := range KeyValues(lines) {
		seen[kv.Key]++
		if seen[kv.Key] == 2 {
			dups = append(dups, kv.Key)
		}
	}
	return dups
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeKey applies the editor's key policy to a user-supplied
// name: trim, uppercase, and collapse internal whitespace runs to
// underscores. ok is false when nothing remains after trimming.
func NormalizeKey(name string) (key string, ok bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	return strings.ToUpper(whitespaceRun.ReplaceAllString(name, "_")), true
}
