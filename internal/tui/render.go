package tui

import (
	"fmt"
	"strings"

	"github.com/envlens/envlens/internal/envline"
)

// RenderKeyValues lays out the key-value entries of a document as an
// aligned two-column listing, flagging duplicated keys.
func RenderKeyValues(kvs []envline.KeyValue, duplicates []string) string {
	if len(kvs) == 0 {
		return Muted("(no entries)")
	}

	dup := make(map[string]bool, len(duplicates))
	for _, k := range duplicates {
		dup[k] = true
	}

	width := 0
	for _, kv := range kvs {
		if len(kv.Key) > width {
			width = len(kv.Key)
		}
	}

	var sb strings.Builder
	for _, kv := range kvs {
		key := Key(kv.Key) + strings.Repeat(" ", width-len(kv.Key))
		fmt.Fprintf(&sb, "%s  %s", key, kv.Value)
		if kv.HasExport {
			sb.WriteString(Muted("  (export)"))
		}
		if dup[kv.Key] {
			sb.WriteString(Warning("  duplicate"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderDiff prints one line per semantic change: + added, ~ updated,
// - removed.
func RenderDiff(changes []envline.Change) string {
	if len(changes) == 0 {
		return Muted("no changes")
	}

	var sb strings.Builder
	for _, c := range changes {
		switch c.Kind {
		case envline.Added:
			fmt.Fprintln(&sb, AddedStyle.Render(fmt.Sprintf("+ %s=%s", c.Key, c.After)))
		case envline.Removed:
			fmt.Fprintln(&sb, RemovedStyle.Render(fmt.Sprintf("- %s=%s", c.Key, c.Before)))
		case envline.Updated:
			fmt.Fprintln(&sb, UpdatedStyle.Render(fmt.Sprintf("~ %s: %s -> %s", c.Key, c.Before, c.After)))
		}
	}
	return sb.String()
}
