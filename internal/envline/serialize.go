package envline

import "strings"

// Serialize renders a line sequence back to text. Lines carrying a
// verbatim cache are emitted unchanged, so Serialize(Parse(s)) == s
// for any s free of \r. Only mutated key-value lines are regenerated.
func Serialize(lines []Line) string {
	var b strings.Builder
	for i, ln := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(render(ln))
	}
	return b.String()
}

func render(ln Line) string {
	switch l := ln.(type) {
	case Blank:
		return l.Raw
	case Comment:
		return l.Raw
	case Unknown:
		return l.Raw
	case KeyValue:
		if l.Raw != "" {
			return l.Raw
		}
		if l.HasExport {
			return "export " + l.Key + "=" + l.Value
		}
		return l.Key + "=" + l.Value
	}
	return ""
}
