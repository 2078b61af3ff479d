// internal/tui/console.go
// Package tui provides the interactive console for trying the time tools.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/timetool/internal/appconfig"
	"github.com/mwiater/timetool/internal/logging"
	"github.com/mwiater/timetool/internal/timetools"
)

// entry is one exchange shown in the history pane.
type entry struct {
	input   string
	output  string
	isError bool
}

// toolsLoadedMsg carries the catalog fetched at startup.
type toolsLoadedMsg struct {
	tools []timetools.Definition
}

// toolsLoadErr reports a failed catalog fetch.
type toolsLoadErr struct{ error }

// callResultMsg carries the outcome of one tool call.
type callResultMsg struct {
	input  string
	result timetools.CallResult
	err    error
}

// model is the Bubble Tea model for the console.
type model struct {
	ctx       context.Context
	config    *appconfig.Config
	invoker   timetools.Invoker
	transport transport
	server    string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	tools     []timetools.Definition
	history   []entry
	isLoading bool
	pending   string
	err       error

	width, height    int
	requestStartTime time.Time
}

// initialModel creates the console model around inv.
func initialModel(ctx context.Context, cfg *appconfig.Config, inv timetools.Invoker) *model {
	if cfg == nil {
		cfg = &appconfig.Config{}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = "parse_time time_rfc2822=Mon, 02 Jan 2006 15:04:05 +0000"
	ti.Prompt = "Call: "
	ti.CharLimit = 0
	ti.Focus()

	t, server := deriveTransport(inv)
	return &model{
		ctx:       ctx,
		config:    cfg,
		invoker:   inv,
		transport: t,
		server:    server,
		input:     ti,
		viewport:  viewport.New(100, 5),
		spinner:   s,
	}
}

// Init starts the spinner and fetches the catalog.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, describeCmd(m.ctx, m.invoker))
}

func describeCmd(ctx context.Context, inv timetools.Invoker) tea.Cmd {
	return func() tea.Msg {
		tools, err := inv.Describe(ctx)
		if err != nil {
			return toolsLoadErr{err}
		}
		return toolsLoadedMsg{tools: tools}
	}
}

func callCmd(ctx context.Context, inv timetools.Invoker, input, name string, args map[string]any) tea.Cmd {
	return func() tea.Msg {
		res, err := inv.Call(ctx, name, args)
		return callResultMsg{input: input, result: res, err: err}
	}
}

// Update handles key presses, window resizes, and tool results.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line == "" || m.isLoading {
				return m, nil
			}
			return m, m.submit(line)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - len(m.input.Prompt) - 2
		headerHeight := 2
		footerHeight := 2
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)

	case toolsLoadedMsg:
		m.tools = msg.tools
		m.err = nil
		return m, nil

	case toolsLoadErr:
		m.err = msg.error
		return m, nil

	case callResultMsg:
		m.isLoading = false
		m.pending = ""
		m.history = append(m.history, m.entryFor(msg))
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.isLoading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit runs a console command or starts a tool call.
func (m *model) submit(line string) tea.Cmd {
	switch line {
	case "clear":
		m.history = nil
		return nil
	case "tools", "help":
		m.history = append(m.history, entry{input: line, output: formatCatalog(m.tools)})
		m.viewport.GotoBottom()
		return nil
	}

	name, args, err := ParseCommandLine(line)
	if err != nil {
		m.history = append(m.history, entry{input: line, output: err.Error(), isError: true})
		return nil
	}

	logging.LogDebug("console call: tool=%s args=%v", name, args)
	m.isLoading = true
	m.pending = line
	m.requestStartTime = time.Now()
	return tea.Batch(m.spinner.Tick, callCmd(m.ctx, m.invoker, line, name, args))
}

func (m *model) entryFor(msg callResultMsg) entry {
	if msg.err != nil {
		return entry{input: msg.input, output: msg.err.Error(), isError: true}
	}
	text := msg.result.Text()
	if msg.result.IsError || m.config.JSONMode {
		return entry{input: msg.input, output: text, isError: msg.result.IsError}
	}
	var p timetools.Payload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return entry{input: msg.input, output: text}
	}
	return entry{input: msg.input, output: fmt.Sprintf("utc_time: %s\nrfc2822:  %s", p.UTCTime, p.UTCTimeRFC2822)}
}

func formatCatalog(tools []timetools.Definition) string {
	if len(tools) == 0 {
		return "no tools loaded"
	}
	var b strings.Builder
	for i, def := range tools {
		if i > 0 {
			b.WriteString("\n")
		}
		var args []string
		if props, ok := def.InputSchema["properties"].(map[string]any); ok {
			for key, prop := range props {
				typ := "value"
				if p, ok := prop.(map[string]any); ok {
					if s, ok := p["type"].(string); ok {
						typ = s
					}
				}
				args = append(args, fmt.Sprintf("%s=<%s>", key, typ))
			}
		}
		slices.Sort(args)
		line := strings.TrimSpace(def.Name + " " + strings.Join(args, " "))
		fmt.Fprintf(&b, "%s\n  %s", line, def.Description)
	}
	return b.String()
}

// View renders the header, history, and input line.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var builder strings.Builder

	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	status := lipgloss.JoinHorizontal(lipgloss.Top,
		headerStyle.Render(fmt.Sprintf("Time tools: %d", len(m.tools))),
		renderTransportBadge(m.transport, m.server),
		" ",
		renderJSONBadge(m.config.JSONMode),
	)
	help := lipgloss.NewStyle().Faint(true).Render(" (tools, clear, esc to quit)")
	builder.WriteString(status + help + "\n")

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		builder.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	promptStyle := lipgloss.NewStyle().Bold(true)
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	var historyBuilder strings.Builder
	for _, e := range m.history {
		historyBuilder.WriteString(promptStyle.Render("> "+e.input) + "\n")
		style := okStyle
		if e.isError {
			style = errStyle
		}
		wrapped := style.Width(max(m.width-2, 1)).Render(e.output)
		historyBuilder.WriteString(wrapped + "\n")
	}
	m.viewport.SetContent(historyBuilder.String())
	builder.WriteString(m.viewport.View())

	if m.isLoading {
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		builder.WriteString(fmt.Sprintf("\n%s Calling %s... %ss", m.spinner.View(), m.pending, timer))
	} else {
		builder.WriteString("\n" + m.input.View())
	}

	return builder.String()
}

// StartConsole runs the console until the user quits.
func StartConsole(ctx context.Context, cfg *appconfig.Config, inv timetools.Invoker) error {
	m := initialModel(ctx, cfg, inv)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}
