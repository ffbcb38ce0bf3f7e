package document

import "github.com/envlens/envlens/internal/envline"

// Action is the closed set of session transitions. Every edit goes
// through Apply so the structured and raw views cannot diverge.
type Action interface {
	isAction()
}

// SetKey upserts a key/value pair in the working lines.
type SetKey struct {
	Key   string
	Value string
}

// RenameKey retargets every line carrying OldKey to NewKey.
type RenameKey struct {
	OldKey string
	NewKey string
}

// RemoveKey drops every line carrying Key.
type RemoveKey struct {
	Key string
}

// ReplaceRaw swaps in user-edited raw text; the working lines are
// reparsed from it.
type ReplaceRaw struct {
	Raw string
}

// MarkSaved advances the saved snapshot to the working lines after a
// successful write. It is not applied on a failed write, so the
// session keeps reporting pending changes.
type MarkSaved struct{}

// Revert replaces both snapshots with freshly re-read file content.
type Revert struct {
	Raw string
}

func (SetKey) isAction()     {}
func (RenameKey) isAction()  {}
func (RemoveKey) isAction()  {}
func (ReplaceRaw) isAction() {}
func (MarkSaved) isAction()  {}
func (Revert) isAction()     {}

// Session holds the last-saved snapshot and the working state of one
// open document. It is single-writer: callers apply one action at a
// time from one goroutine per document.
type Session struct {
	doc      Document
	original []envline.Line
	rawText  string
}

// NewSession opens a session over freshly loaded content. Both
// snapshots start equal.
func NewSession(file FileRef, raw string) *Session {
	lines := envline.Parse(raw)
	return &Session{
		doc:      Document{File: file, Lines: lines},
		original: lines,
		rawText:  envline.Serialize(lines),
	}
}

// Apply runs one state transition. Structural actions regenerate the
// raw text through the serializer; raw actions reparse the lines.
func (s *Session) Apply(a Action) {
	switch act := a.(type) {
	case SetKey:
		s.setLines(envline.Upsert(s.doc.Lines, act.Key, act.Value))
	case RenameKey:
		s.setLines(envline.Rename(s.doc.Lines, act.OldKey, act.NewKey))
	case RemoveKey:
		s.setLines(envline.Remove(s.doc.Lines, act.Key))
	case ReplaceRaw:
		s.doc.Lines = envline.Parse(act.Raw)
		s.rawText = act.Raw
	case MarkSaved:
		s.original = s.doc.Lines
	case Revert:
		lines := envline.Parse(act.Raw)
		s.doc.Lines = lines
		s.original = lines
		s.rawText = envline.Serialize(lines)
	}
}

func (s *Session) setLines(lines []envline.Line) {
	s.doc.Lines = lines
	s.rawText = envline.Serialize(lines)
}

// File returns the reference of the open document.
func (s *Session) File() FileRef { return s.doc.File }

// Lines returns the working line sequence. Callers must treat it as
// read-only; edits go through Apply.
func (s *Session) Lines() []envline.Line { return s.doc.Lines }

// RawText returns the raw-text view, always in sync with Lines.
func (s *Session) RawText() string { return s.rawText }

// Diff reports the semantic changes pending since the last save.
func (s *Session) Diff() []envline.Change {
	return envline.Diff(s.original, s.doc.Lines)
}

// Duplicates reports duplicated keys in the working state.
func (s *Session) Duplicates() []string {
	return envline.DuplicateKeys(s.doc.Lines)
}

// Dirty reports whether the working text differs from the saved
// snapshot, comment and formatting edits included.
func (s *Session) Dirty() bool {
	return envline.Serialize(s.original) != s.rawText
}
