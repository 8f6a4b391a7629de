// Package tui is the interactive front end: a bubbletea program with a text
// section, a file section and a comparison section. All hashing goes through
// a *session.State owned by the caller.
package tui

import (
	"errors"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jxwalker/hashcheck/internal/config"
	friendlyerrors "github.com/jxwalker/hashcheck/internal/errors"
	"github.com/jxwalker/hashcheck/internal/session"
)

type section int

const (
	sectionText section = iota
	sectionFile
	sectionCompare
	numSections
)

const pickerHeight = 8

type Model struct {
	st   *session.State
	th   Theme
	keys keyMap
	help help.Model

	textInput textinput.Model
	refInput  textinput.Model
	picker    filepicker.Model

	focus  section
	w, h   int
	notice string
	errMsg string

	// clip writes to the system clipboard; replaced in tests.
	clip func(string) error
}

func New(cfg *config.Config, st *session.State) *Model {
	if cfg == nil {
		cfg = config.Default()
	}
	mk := func(ph, val string) textinput.Model {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = ph
		ti.SetValue(val)
		// Unlimited: a truncated field would hash or compare other text.
		ti.CharLimit = 0
		return ti
	}
	fp := filepicker.New()
	fp.CurrentDirectory = startDir(cfg.UI.StartDir)
	fp.AutoHeight = false
	fp.Height = pickerHeight
	fp.DirAllowed = false
	fp.FileAllowed = true

	m := &Model{
		st:        st,
		th:        defaultTheme(),
		keys:      defaultKeys(),
		help:      help.New(),
		textInput: mk("text to hash", st.Text),
		refInput:  mk("expected SHA-256", st.Reference),
		picker:    fp,
		clip:      clipboard.WriteAll,
	}
	m.setFocus(sectionText)
	return m
}

func startDir(dir string) string {
	if dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.picker.Init())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.help.Width = msg.Width
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	// Directory listings for the picker, cursor blinks for the inputs.
	var cmds [3]tea.Cmd
	m.picker, cmds[0] = m.picker.Update(msg)
	m.textInput, cmds[1] = m.textInput.Update(msg)
	m.refInput, cmds[2] = m.refInput.Update(msg)
	return m, tea.Batch(cmds[:]...)
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.setFocus((m.focus + 1) % numSections)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.setFocus((m.focus + numSections - 1) % numSections)
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copyDigest()
		return m, nil
	case key.Matches(msg, m.keys.HashFile):
		m.hashFile()
		return m, nil
	}

	switch m.focus {
	case sectionText:
		return m.updateText(msg)
	case sectionCompare:
		return m.updateCompare(msg)
	default:
		return m.updateFile(msg)
	}
}

func (m *Model) updateText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		m.st.Text = m.textInput.Value()
		m.st.GenerateTextHash()
		m.notice = ""
		m.errMsg = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.st.Text = m.textInput.Value()
	return m, cmd
}

func (m *Model) updateCompare(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		// Compared exactly as typed: no trimming or case folding.
		m.st.Reference = m.refInput.Value()
		m.report(m.st.CompareFile())
		return m, nil
	}
	var cmd tea.Cmd
	m.refInput, cmd = m.refInput.Update(msg)
	m.st.Reference = m.refInput.Value()
	return m, cmd
}

func (m *Model) updateFile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.selectFile(path)
	}
	return m, cmd
}

func (m *Model) selectFile(path string) {
	m.st.SelectFile(path)
	m.errMsg = ""
	m.notice = "ctrl+g to hash this file"
}

func (m *Model) hashFile() {
	m.report(m.st.GenerateFileHash())
}

func (m *Model) copyDigest() {
	d := m.st.LastDigest()
	if d == "" {
		m.notice = "nothing to copy yet"
		return
	}
	if err := m.clip(d.String()); err != nil {
		m.errMsg = "clipboard: " + err.Error()
		return
	}
	m.notice = "copied " + d.String()[:12] + "…"
}

// report renders the outcome of a file operation into the status lines.
func (m *Model) report(err error) {
	switch {
	case err == nil:
		m.errMsg = ""
		m.notice = ""
	case errors.Is(err, session.ErrNoFile):
		m.notice = "pick a file first"
	default:
		m.errMsg = friendlyerrors.Summary(err)
	}
}

func (m *Model) setFocus(s section) {
	m.focus = s
	m.textInput.Blur()
	m.refInput.Blur()
	switch s {
	case sectionText:
		m.textInput.Focus()
	case sectionCompare:
		m.refInput.Focus()
	}
}

func trimPath(p string, max int) string {
	if max <= 3 || len(p) <= max {
		return p
	}
	return "…" + p[len(p)-max+1:]
}
