package ui

import (
	"fmt"
	"strings"

	"sqltok/pkg/diag"
	"sqltok/pkg/lexer"
	"sqltok/pkg/ui/base"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxTokenTextWidth = 30

// Model is the token-inspector application state.
type Model struct {
	editor      textarea.Model
	tokenTable  table.Model
	sourceView  viewport.Model
	help        help.Model
	highlighter *Highlighter

	width           int
	height          int
	showHelp        bool
	onlySignificant bool

	src    []byte
	tokens []lexer.Token
	diags  []diag.Diagnostic

	keys keyMap
}

func NewModel() Model {
	ta := textarea.New()
	ta.Placeholder = "Enter source to tokenize..."
	ta.CharLimit = 5000
	ta.ShowLineNumbers = true
	ta.SetHeight(6)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(bgLight)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(textMuted)
	ta.FocusedStyle.Text = lipgloss.NewStyle().Foreground(textPrimary)
	ta.FocusedStyle.LineNumber = lipgloss.NewStyle().Foreground(textMuted)

	vp := viewport.New(80, 8)
	vp.Style = sourceStyle

	t := table.New(
		table.WithColumns(tokenColumns(80)),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(primaryColor).
		BorderBottom(true).
		Bold(true).
		Foreground(primaryColor)
	s.Selected = s.Selected.
		Foreground(bgDark).
		Background(secondaryColor).
		Bold(false)
	t.SetStyles(s)

	return Model{
		editor:      ta,
		tokenTable:  t,
		sourceView:  vp,
		help:        help.New(),
		highlighter: NewHighlighter(),
		keys:        keys,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tokenize):
			m.tokenize(m.editor.Value())

		case key.Matches(msg, m.keys.Clear):
			m.editor.SetValue("")
			m.src = nil
			m.tokens = nil
			m.diags = nil
			m.refreshViews()

		case key.Matches(msg, m.keys.Filter):
			m.onlySignificant = !m.onlySignificant
			m.refreshViews()

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)

	m.sourceView, cmd = m.sourceView.Update(msg)
	cmds = append(cmds, cmd)

	m.tokenTable, cmd = m.tokenTable.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// tokenize scans the editor contents and refreshes every pane. Scanning
// is a bounded in-memory pass, so it runs inline rather than as a Cmd.
func (m *Model) tokenize(src string) {
	m.src = []byte(src)
	m.tokens = lexer.Tokenize(m.src)
	m.diags = diag.Collect(m.src)
	m.refreshViews()
}

func (m *Model) refreshViews() {
	rows := make([]table.Row, 0, len(m.tokens))
	for i, tok := range m.tokens {
		if m.onlySignificant && !tok.IsSignificant() {
			continue
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i),
			tok.Type.String(),
			fmt.Sprintf("%d", tok.Pos),
			base.TruncateString(fmt.Sprintf("%q", tok.Text), maxTokenTextWidth),
		})
	}
	m.tokenTable.SetRows(rows)

	var b strings.Builder
	b.WriteString(m.highlighter.Highlight(string(m.src)))
	for _, d := range m.diags {
		b.WriteString("\n\n")
		b.WriteString(d.Render(m.src))
	}
	m.sourceView.SetContent(b.String())
}

func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderEditor())

	if len(m.tokens) > 0 {
		sections = append(sections, m.renderTokens())
		sections = append(sections, m.sourceView.View())
	} else if len(m.src) > 0 {
		sections = append(sections, m.renderEmpty())
	}

	sections = append(sections, m.renderStatusBar())

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}

	return appStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("sqltok inspector")
	badge := badgeStyle.Render(fmt.Sprintf("tokens: %d", len(m.tokens)))

	header := lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", badge)

	separatorWidth := base.Max(m.width-4, 0)
	separator := lipgloss.NewStyle().
		Foreground(bgLight).
		Render(strings.Repeat("─", separatorWidth))

	return header + "\n" + separator
}

func (m Model) renderEditor() string {
	label := lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true).
		Render("Source")

	return fmt.Sprintf("%s\n%s", label, editorStyle.Render(m.editor.View()))
}

func (m Model) renderTokens() string {
	label := fmt.Sprintf("Tokens (%d", len(m.tokens))
	if m.onlySignificant {
		label += ", significant only"
	}
	label += ")"

	header := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true).
		Render(label)

	return fmt.Sprintf("%s\n%s", header, m.tokenTable.View())
}

func (m Model) renderEmpty() string {
	return lipgloss.NewStyle().
		Foreground(textMuted).
		Padding(1, 0).
		Render("empty input")
}

func (m Model) renderStatusBar() string {
	status := "● ready"
	if errs := len(m.diags); errs > 0 {
		status = errorStyle.Render(fmt.Sprintf(" %d error(s) ", errs))
	}

	hint := lipgloss.NewStyle().
		Foreground(textMuted).
		Render(" | ctrl+enter tokenize | ctrl+h help")

	return statusBarStyle.
		Width(base.Max(m.width-4, 0)).
		Render(status + hint)
}

func (m Model) renderHelp() string {
	helpText := m.help.FullHelpView([][]key.Binding{
		{
			m.keys.Tokenize,
			m.keys.Clear,
			m.keys.Filter,
			m.keys.Help,
			m.keys.Quit,
		},
	})

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(bgMedium).
		Render(helpText)
}

func tokenColumns(width int) []table.Column {
	textWidth := base.Max(width-34, 16)
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Type", Width: 32},
		{Title: "Pos", Width: 6},
		{Title: "Text", Width: base.Min(textWidth, maxTokenTextWidth)},
	}
}

// updateLayout adjusts component sizes based on window size
func (m *Model) updateLayout() {
	editorHeight := 6
	tableHeight := base.Max((m.height-editorHeight-12)/2, 4)

	m.editor.SetWidth(m.width - 6)
	m.tokenTable.SetColumns(tokenColumns(m.width - 6))
	m.tokenTable.SetHeight(tableHeight)
	m.sourceView.Width = m.width - 6
	m.sourceView.Height = tableHeight
}
