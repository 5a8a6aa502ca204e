package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entap/expr/lang"
	"github.com/entap/expr/log"
)

const helpMessage = `Enter an expression to evaluate it. The last result is kept in ans.

  name = expr   assign a variable
  :vars         list variables
  :funcs        list function signatures
  :unset name   remove a variable
  :edit         edit the variables in $EDITOR
  :clear        clear the screen
  :help         show this text
  :quit         exit (also Ctrl+D, or Ctrl+C on an empty line)

Tab / Shift+Tab cycle through completions, Esc cancels a completion.
Up / Down walk the history.`

const prompt = "➜ "

var (
	promptStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	inputStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle               = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle              = suggestionStyle.Bold(true)
	selectedStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	selectedMatchStyle      = selectedStyle.Bold(true)
	signatureStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	signatureSeparatorStyle = signatureStyle
	currentParamStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// Options configure a REPL run.
type Options struct {
	Vars        map[string]lang.Value // initial variables
	Env         bool                  // bind the host functions
	Strict      bool                  // unknown names are errors rather than 0
	HistoryPath string                // empty keeps history in memory only
	Logger      log.Logger
}

// editDoneMsg carries the outcome of an :edit.
type editDoneMsg struct {
	vars map[string]lang.Value
	err  error
}

const defaultWidth = 80

type model struct {
	ctx     context.Context
	session *Session
	history *History
	logger  log.Logger
	input   textinput.Model

	histIdx int // == history.Len() when not browsing

	comp      completion
	selected  int    // candidate index while tabbing, -1 otherwise
	tabbing   bool   // Tab was pressed since the last edit
	preTab    string // input before tabbing started
	preCursor int

	width    int
	quitting bool
}

// Run starts an interactive session on the terminal and returns when the
// user quits.
func Run(ctx context.Context, opts Options) error {
	history := NewHistory(opts.HistoryPath)
	if err := history.Load(); err != nil {
		opts.Logger.WarnContext(ctx, "load history",
			slog.String("path", opts.HistoryPath),
			slog.Any("error", err),
		)
	}

	opts.Logger.TraceContext(ctx, "repl start",
		slog.Int("vars", len(opts.Vars)),
		slog.Int("history", history.Len()),
	)

	_, err := tea.NewProgram(newModel(ctx, NewSession(opts), history, opts.Logger),
		tea.WithContext(ctx),
	).Run()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

func newModel(ctx context.Context, s *Session, h *History, logger log.Logger) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctx:      ctx,
		session:  s,
		history:  h,
		logger:   logger,
		input:    ti,
		histIdx:  h.Len(),
		selected: -1,
		width:    defaultWidth,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(prompt)-2, 1)

		return m, nil

	case editDoneMsg:
		switch {
		case errors.Is(msg.err, ErrEditDeclined):
			return m, tea.Println(hintStyle.Render("edit discarded"))
		case msg.err != nil:
			return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
		}

		m.session.vars = msg.vars

		return m, tea.Println(resultStyle.Render(
			"variables updated (" + strconv.Itoa(len(msg.vars)) + ")"))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.hint() + "\n"
}

// hint is the line under the input: history position, a call signature,
// completions, or usage help.
func (m model) hint() string {
	input := m.input.Value()

	if m.histIdx < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("history %d/%d", m.histIdx+1, m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		return hintStyle.Render("Type an expression, or :help")
	}

	if len(m.comp.matches) > 0 {
		return renderCandidateBar(m.session, m.comp.matches, m.selected, m.width)
	}

	if call, ok := detectCall(input, m.input.Position()); ok {
		if f, ok := m.session.Func(call.name); ok {
			return renderSignatureHint(f, call.arg)
		}
	}

	return ""
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.histIdx = m.history.Len()
		m.refresh()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabbing {
			m.tabbing = false
			m.refresh()

			return m, nil
		}

		return m.submit()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyEsc:
		if m.tabbing {
			m.tabbing = false
			m.input.SetValue(m.preTab)
			m.input.SetCursor(m.preCursor)
			m.refresh()
		}

		return m, nil

	case tea.KeyUp:
		return m.browse(-1), nil

	case tea.KeyDown:
		return m.browse(1), nil
	}

	var cmd tea.Cmd

	m.tabbing = false
	m.histIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

func (m *model) refresh() {
	m.comp = complete(m.session, m.input.Value(), m.input.Position())
	m.selected = -1

	// Nothing left to offer once the word is complete.
	if len(m.comp.matches) == 1 &&
		m.comp.matches[0].Str == m.input.Value()[m.comp.wordStart:m.comp.wordEnd] {
		m.comp.matches = nil
	}
}

// cycle moves the selection by step and writes the selected candidate into
// the input. A single candidate is accepted immediately.
func (m model) cycle(step int) model {
	n := len(m.comp.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.replaceWord(m.comp.matches[0].Str)
		m.tabbing = false
		m.refresh()

		return m
	}

	if !m.tabbing {
		m.tabbing = true
		m.preTab = m.input.Value()
		m.preCursor = m.input.Position()
		m.selected = -1

		if step < 0 {
			m.selected = 0
		}
	}

	m.selected = ((m.selected+step)%n + n) % n
	m.replaceWord(m.comp.matches[m.selected].Str)

	return m
}

func (m *model) replaceWord(word string) {
	in := m.input.Value()
	m.input.SetValue(in[:m.comp.wordStart] + word + in[m.comp.wordEnd:])
	m.comp.wordEnd = m.comp.wordStart + len(word)
	m.input.SetCursor(m.comp.wordEnd)
}

// browse moves through the history. Moving past the newest entry clears
// the input.
func (m model) browse(step int) model {
	i := m.histIdx + step
	if i < 0 || i > m.history.Len() {
		return m
	}

	m.histIdx = i
	m.tabbing = false

	line, err := m.history.Entry(i)
	if err != nil {
		line = ""
	}

	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	m.comp = completion{}

	return m
}

func (m model) submit() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())

	m.input.SetValue("")
	m.comp = completion{}

	if line == "" {
		return m, nil
	}

	if err := m.history.Add(line); err != nil {
		m.logger.WarnContext(m.ctx, "save history", slog.Any("error", err))
	}

	m.histIdx = m.history.Len()

	echo := tea.Println(promptStyle.Render(prompt) + inputStyle.Render(line))

	res, err := m.session.Exec(m.ctx, line)
	if err != nil {
		m.logger.TraceContext(m.ctx, "repl error", slog.Any("error", err))

		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	switch res.action {
	case actionQuit:
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case actionClear:
		return m, tea.ClearScreen

	case actionEdit:
		c := &editVarsCommand{ctx: m.ctx, session: m.session, logger: m.logger}

		return m, tea.Sequence(echo, tea.Exec(c, func(err error) tea.Msg {
			return editDoneMsg{vars: c.vars, err: err}
		}))
	}

	if res.text == "" {
		return m, echo
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(res.text)))
}
