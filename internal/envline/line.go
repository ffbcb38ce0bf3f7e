// Package envline implements the env-line model: an order-preserving,
// round-trip-safe representation of .env file content, with pure
// structural operations and a semantic diff.
package envline

// Line is one physical row of an env document. The variant set is
// closed: Blank, Comment, KeyValue, and Unknown are the only
// implementations, so the parser and serializer can match exhaustively.
type Line interface {
	isLine()
}

// Blank is an empty or whitespace-only line. Raw keeps the original
// whitespace so untouched lines serialize byte-for-byte; a zero Blank
// renders as an empty line.
type Blank struct {
	Raw string
}

// Comment is a line whose trimmed content starts with '#' or ';'.
// Raw is the entire original line, leading whitespace included.
type Comment struct {
	Raw string
}

// KeyValue is a `[export ]KEY=VALUE` assignment. Value is everything
// after the first '=' verbatim, untrimmed. Raw is the verbatim cache
// of the original line; it is cleared whenever Key or Value changes so
// the serializer knows to regenerate the line.
type KeyValue struct {
	Key       string
	Value     string
	HasExport bool
	Raw       string
}

// Unknown is any line that matches none of the other variants, such as
// a malformed assignment. Held verbatim and never reinterpreted.
type Unknown struct {
	Raw string
}

func (Blank) isLine()    {}
func (Comment) isLine()  {}
func (KeyValue) isLine() {}
func (Unknown) isLine()  {}
