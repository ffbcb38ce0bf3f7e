package envline

import (
	"regexp"
	"strings"
)

var assignment = regexp.MustCompile(`^\s*(export\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*=(.*)$`)

// Parse turns raw text into an ordered line sequence. It is total:
// every input line maps to exactly one Line, malformed content
// included. Both \n and \r\n line endings are accepted; the \r is
// stripped before classification.
func Parse(raw string) []Line {
	rows := strings.Split(raw, "\n")
	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, classify(strings.TrimSuffix(row, "\r")))
	}
	return lines
}

func classify(row string) Line {
	trimmed := strings.TrimSpace(row)
	if trimmed == "" {
		return Blank{Raw: row}
	}
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
		return Comment{Raw: row}
	}
	m := assignment.FindStringSubmatch(row)
	if m == nil {
		return Unknown{Raw: row}
	}
	return KeyValue{
		Key:       m[2],
		Value:     m[3],
		HasExport: m[1] != "",
		Raw:       row,
	}
}
