package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jxwalker/hashcheck/internal/session"
)

type Theme struct {
	border      lipgloss.Style
	borderFocus lipgloss.Style
	title       lipgloss.Style
	label       lipgloss.Style
	digest      lipgloss.Style
	ok          lipgloss.Style
	bad         lipgloss.Style
	notice      lipgloss.Style
	footer      lipgloss.Style
}

func defaultTheme() Theme {
	b := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return Theme{
		border:      b.BorderForeground(lipgloss.Color("240")),
		borderFocus: b.BorderForeground(lipgloss.Color("63")),
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		label:       lipgloss.NewStyle().Faint(true),
		digest:      lipgloss.NewStyle().Foreground(lipgloss.Color("219")),
		ok:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		bad:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		footer:      lipgloss.NewStyle().Faint(true),
	}
}

func (m *Model) View() string {
	w := m.w
	if w == 0 {
		w = 100
	}
	inner := w - 4
	if inner < 40 {
		inner = 40
	}
	parts := []string{
		m.th.title.Render("SHA256 Hash Checker"),
		m.box(sectionText, inner, m.renderText()),
		m.box(sectionFile, inner, m.renderFile(inner)),
		m.box(sectionCompare, inner, m.renderCompare()),
	}
	if m.errMsg != "" {
		parts = append(parts, m.th.bad.Render("Error: "+m.errMsg))
	} else if m.notice != "" {
		parts = append(parts, m.th.notice.Render(m.notice))
	}
	parts = append(parts, m.th.footer.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) box(s section, width int, body string) string {
	style := m.th.border
	if m.focus == s {
		style = m.th.borderFocus
	}
	return style.Width(width).Render(body)
}

func (m *Model) renderText() string {
	var sb strings.Builder
	sb.WriteString(m.th.label.Render("Text to hash:"))
	sb.WriteString("\n")
	sb.WriteString(m.textInput.View())
	if m.st.TextDigest != "" {
		sb.WriteString("\n")
		sb.WriteString(m.th.label.Render("SHA256 Hash:"))
		sb.WriteString("\n")
		sb.WriteString(m.th.digest.Render(m.st.TextDigest.String()))
	}
	return sb.String()
}

func (m *Model) renderFile(width int) string {
	var sb strings.Builder
	sb.WriteString(m.th.label.Render("Pick a file: " + trimPath(m.picker.CurrentDirectory, width-14)))
	sb.WriteString("\n")
	if m.focus == sectionFile {
		sb.WriteString(m.picker.View())
	} else {
		sb.WriteString(m.th.label.Render("(tab to browse)"))
	}
	if m.st.FilePath != "" {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("File: %s (%s)", trimPath(m.st.FilePath, width-20), humanize.Bytes(uint64(m.st.FileSize))))
	}
	if m.st.FileDigest != "" {
		sb.WriteString("\n")
		sb.WriteString(m.th.label.Render("File SHA256 Hash:"))
		sb.WriteString("\n")
		sb.WriteString(m.th.digest.Render(m.st.FileDigest.String()))
	}
	return sb.String()
}

func (m *Model) renderCompare() string {
	var sb strings.Builder
	sb.WriteString(m.th.label.Render("Comparison Hash:"))
	sb.WriteString("\n")
	sb.WriteString(m.refInput.View())
	if m.st.Status != session.StatusNone {
		style := m.th.bad
		if m.st.Status == session.StatusMatch {
			style = m.th.ok
		}
		sb.WriteString("\n")
		sb.WriteString(m.th.label.Render("Comparison Result:"))
		sb.WriteString("\n")
		sb.WriteString(style.Render(m.st.Status.Message()))
	}
	return sb.String()
}
