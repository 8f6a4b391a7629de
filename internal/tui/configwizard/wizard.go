package configwizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jxwalker/hashcheck/internal/config"
)

var labels = []string{
	"logging.level",
	"logging.format",
	"logging.file",
	"metrics.prometheus_textfile.enabled",
	"metrics.prometheus_textfile.path",
	"ui.alt_screen",
	"ui.start_dir",
	"ui.default_text",
}

type Wizard struct {
	inputs []textinput.Model
	focus  int
	done   bool
	out    *config.Config
}

func New(defaults *config.Config) *Wizard {
	if defaults == nil {
		defaults = config.Default()
	}
	mk := func(ph, val string) textinput.Model {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = ph
		ti.SetValue(val)
		ti.CharLimit = 256
		return ti
	}
	d := defaults
	w := &Wizard{inputs: []textinput.Model{
		mk("debug|info|warn|error", d.Logging.Level),
		mk("human|json", d.Logging.Format),
		mk("path for TUI logs (empty discards)", d.Logging.File),
		mk("true|false", fmt.Sprint(d.Metrics.PrometheusTextfile.Enabled)),
		mk("path to .prom file", d.Metrics.PrometheusTextfile.Path),
		mk("true|false", fmt.Sprint(d.UI.AltScreen)),
		mk("file picker start directory", d.UI.StartDir),
		mk("initial text", d.UI.DefaultText),
	}}
	w.inputs[0].Focus()
	return w
}

func (w *Wizard) Init() tea.Cmd { return textinput.Blink }

func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "ctrl+c", "esc":
			w.done = true
			return w, tea.Quit
		case "tab", "shift+tab", "enter", "up", "down":
			if m.String() == "enter" && w.focus == len(w.inputs)-1 {
				w.done = true
				w.out = w.buildConfig()
				return w, tea.Quit
			}
			if m.String() == "up" || m.String() == "shift+tab" {
				if w.focus > 0 {
					w.focus--
				}
			} else if w.focus < len(w.inputs)-1 {
				w.focus++
			}
			for j := range w.inputs {
				if j == w.focus {
					w.inputs[j].Focus()
				} else {
					w.inputs[j].Blur()
				}
			}
			return w, nil
		}
	}
	cmds := make([]tea.Cmd, len(w.inputs))
	for i := range w.inputs {
		w.inputs[i], cmds[i] = w.inputs[i].Update(msg)
	}
	return w, tea.Batch(cmds...)
}

func (w *Wizard) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("hashcheck config wizard") + "\n")
	b.WriteString("Fill in fields. Tab/Shift-Tab to navigate, Enter on the last field to submit. Esc to cancel.\n\n")
	for i, input := range w.inputs {
		marker := " "
		if i == w.focus {
			marker = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-38s %s\n", marker, labels[i]+":", input.View()))
	}
	if w.done && w.out != nil {
		b.WriteString("\nDone. Saving...\n")
	}
	return b.String()
}

func (w *Wizard) buildConfig() *config.Config {
	get := func(i int) string { return strings.TrimSpace(w.inputs[i].Value()) }
	parseBool := func(s string) bool {
		return strings.EqualFold(s, "true") || s == "1" || strings.EqualFold(s, "y") || strings.EqualFold(s, "yes")
	}
	o := config.Default()
	if lvl := strings.ToLower(get(0)); lvl != "" {
		o.Logging.Level = lvl
	}
	switch f := strings.ToLower(get(1)); f {
	case "human", "json":
		o.Logging.Format = f
	}
	o.Logging.File = get(2)
	o.Metrics.PrometheusTextfile.Enabled = parseBool(get(3))
	o.Metrics.PrometheusTextfile.Path = get(4)
	o.UI.AltScreen = parseBool(get(5))
	o.UI.StartDir = get(6)
	// default_text is kept verbatim; leading spaces are hashed like any other text.
	o.UI.DefaultText = w.inputs[7].Value()
	return o
}

// Config returns the produced config, or nil if the wizard was cancelled.
func (w *Wizard) Config() *config.Config { return w.out }
