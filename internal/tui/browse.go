package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/envlens/envlens/internal/document"
	"github.com/envlens/envlens/internal/envio"
	"github.com/envlens/envlens/internal/envline"
	"github.com/envlens/envlens/internal/history"
	"github.com/envlens/envlens/internal/scanner"
)

// browsePhase is the UI lifecycle: idle -> scanning -> files or
// failed; scanning returns to idle on cancel. files/entries/editing
// are the inspection states over a completed scan.
type browsePhase int

const (
	phaseIdle browsePhase = iota
	phaseScanning
	phaseFiles
	phaseEntries
	phaseEditing
	phaseFailed
)

type startScanMsg struct{}
type scanDoneMsg struct{ res *scanner.Result }
type scanFailedMsg struct{ err error }
type scanCanceledMsg struct{}

// BrowseModel is the interactive browser: scan a tree, pick a file,
// inspect and edit its entries.
type BrowseModel struct {
	root    string
	backup  bool
	opts    scanner.Options
	phase   browsePhase
	spin    spinner.Model
	cancel  context.CancelFunc
	files   []document.FileRef
	cursor  int
	session *document.Session
	entries table.Model
	input   textinput.Model
	editKey string
	status  string
	err     error
}

// NewBrowse builds the browser for a scan root. backup controls
// whether saves copy the file aside first.
func NewBrowse(root string, opts scanner.Options, backup bool) BrowseModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = KeyStyle

	ti := textinput.New()
	ti.Prompt = "value: "

	return BrowseModel{
		root:   root,
		backup: backup,
		opts:   opts,
		phase:  phaseIdle,
		spin:   sp,
		input:  ti,
	}
}

// Init cannot mutate the model, so the initial scan is requested as a
// message and started through Update like every later rescan.
func (m BrowseModel) Init() tea.Cmd {
	return func() tea.Msg { return startScanMsg{} }
}

// startScanCmd kicks off the scan; the cancel func is kept on the
// model so Esc can abort mid-flight.
func (m *BrowseModel) startScanCmd() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.phase = phaseScanning
	m.status = ""
	root, opts := m.root, m.opts
	return func() tea.Msg {
		res, err := scanner.Scan(ctx, root, opts)
		if errors.Is(err, context.Canceled) {
			return scanCanceledMsg{}
		}
		if err != nil {
			return scanFailedMsg{err: err}
		}
		return scanDoneMsg{res: res}
	}
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startScanMsg:
		return m, tea.Batch(m.spin.Tick, m.startScanCmd())

	case spinner.TickMsg:
		if m.phase != phaseScanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case scanDoneMsg:
		m.phase = phaseFiles
		m.cursor = 0
		m.files = nil
		for _, g := range msg.res.Groups {
			m.files = append(m.files, g.Files...)
		}
		if len(m.files) == 0 {
			m.status = "no env files found"
		}
		return m, nil

	case scanFailedMsg:
		m.phase = phaseFailed
		m.err = msg.err
		return m, nil

	case scanCanceledMsg:
		m.phase = phaseIdle
		m.status = "scan canceled"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	}

	switch m.phase {
	case phaseIdle, phaseFailed:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "s", "r":
			return m, tea.Batch(m.spin.Tick, m.startScanCmd())
		}

	case phaseScanning:
		if msg.String() == "esc" {
			m.cancel()
		}

	case phaseFiles:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "r":
			return m, tea.Batch(m.spin.Tick, m.startScanCmd())
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.files)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.files) == 0 {
				break
			}
			return m.openFile(m.files[m.cursor])
		}

	case phaseEntries:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			m.phase = phaseFiles
			m.session = nil
		case "e":
			if kv, ok := m.selectedEntry(); ok {
				m.editKey = kv.Key
				m.input.SetValue(kv.Value)
				m.input.Focus()
				m.phase = phaseEditing
				return m, textinput.Blink
			}
		case "d":
			if kv, ok := m.selectedEntry(); ok {
				m.session.Apply(document.RemoveKey{Key: kv.Key})
				m.refreshEntries()
				m.status = fmt.Sprintf("%s removed (unsaved)", kv.Key)
			}
		case "s":
			return m.save()
		default:
			var cmd tea.Cmd
			m.entries, cmd = m.entries.Update(msg)
			return m, cmd
		}

	case phaseEditing:
		switch msg.String() {
		case "esc":
			m.phase = phaseEntries
			m.input.Blur()
		case "enter":
			m.session.Apply(document.SetKey{Key: m.editKey, Value: m.input.Value()})
			m.refreshEntries()
			m.status = fmt.Sprintf("%s updated (unsaved)", m.editKey)
			m.phase = phaseEntries
			m.input.Blur()
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m BrowseModel) openFile(ref document.FileRef) (tea.Model, tea.Cmd) {
	raw, fresh, err := envio.Read(ref.AbsolutePath)
	if err != nil {
		// A read failure does not tear down the browser.
		m.status = err.Error()
		return m, nil
	}
	m.session = document.NewSession(fresh, raw)
	m.entries = table.New(
		table.WithColumns([]table.Column{
			{Title: "Key", Width: 28},
			{Title: "Value", Width: 48},
		}),
		table.WithFocused(true),
		table.WithHeight(16),
	)
	m.refreshEntries()
	m.phase = phaseEntries
	m.status = ""
	return m, nil
}

func (m *BrowseModel) refreshEntries() {
	var rows []table.Row
	for _, kv := range envline.KeyValues(m.session.Lines()) {
		rows = append(rows, table.Row{kv.Key, kv.Value})
	}
	m.entries.SetRows(rows)
}

func (m *BrowseModel) selectedEntry() (envline.KeyValue, bool) {
	kvs := envline.KeyValues(m.session.Lines())
	idx := m.entries.Cursor()
	if idx < 0 || idx >= len(kvs) {
		return envline.KeyValue{}, false
	}
	return kvs[idx], true
}

func (m BrowseModel) save() (tea.Model, tea.Cmd) {
	err := envio.Write(m.session.File().AbsolutePath, m.session.RawText(), envio.WriteOptions{CreateBackup: m.backup})
	if err != nil {
		// Working state is untouched; the session still reports
		// pending changes.
		m.status = err.Error()
		return m, nil
	}
	var keys []string
	for _, c := range m.session.Diff() {
		keys = append(keys, c.Key)
	}
	m.session.Apply(document.MarkSaved{})
	_ = history.Log(m.session.File().FolderPath, history.OpSave, m.session.File().FileName, keys...)
	m.status = "saved"
	return m, nil
}

func (m BrowseModel) View() string {
	var sb strings.Builder

	switch m.phase {
	case phaseIdle:
		sb.WriteString(Header("envlens"))
		sb.WriteString("\n")
		if m.status != "" {
			sb.WriteString(Muted(m.status) + "\n")
		}
		sb.WriteString(Muted("s: scan  q: quit"))

	case phaseScanning:
		fmt.Fprintf(&sb, "%s scanning %s %s", m.spin.View(), m.root, Muted("(esc to cancel)"))

	case phaseFailed:
		sb.WriteString(Error("scan failed: "+m.err.Error()) + "\n")
		sb.WriteString(Muted("r: retry  q: quit"))

	case phaseFiles:
		sb.WriteString(Header(fmt.Sprintf("%d env files", len(m.files))))
		sb.WriteString("\n")
		for i, f := range m.files {
			line := f.AbsolutePath
			if i == m.cursor {
				line = LabelStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			sb.WriteString(line + "\n")
		}
		if m.status != "" {
			sb.WriteString(Muted(m.status) + "\n")
		}
		sb.WriteString(Muted("enter: open  r: rescan  q: quit"))

	case phaseEntries, phaseEditing:
		header := m.session.File().AbsolutePath
		if m.session.Dirty() {
			header += Warning(" *")
		}
		sb.WriteString(Header(header))
		sb.WriteString("\n")
		sb.WriteString(m.entries.View())
		sb.WriteString("\n")
		if dups := m.session.Duplicates(); len(dups) > 0 {
			sb.WriteString(Warning("duplicate keys: "+strings.Join(dups, ", ")) + "\n")
		}
		if m.phase == phaseEditing {
			fmt.Fprintf(&sb, "%s %s\n", Key(m.editKey), m.input.View())
			sb.WriteString(Muted("enter: apply  esc: cancel"))
		} else {
			if m.status != "" {
				sb.WriteString(Muted(m.status) + "\n")
			}
			sb.WriteString(Muted("e: edit  d: delete  s: save  esc: back  q: quit"))
		}
	}

	sb.WriteString("\n")
	return sb.String()
}
