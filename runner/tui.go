package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/rlch/graphil"
)

// TUIFormatter implements Formatter with an animated terminal UI.
type TUIFormatter struct {
	program  *tea.Program
	model    *tuiModel
	out      io.Writer
	mu       sync.Mutex
	finished bool
}

// NewTUIFormatter creates a TUI listing the queries of source.
func NewTUIFormatter(w io.Writer, source string, queries []string) *TUIFormatter {
	model := newTUIModel(source, queries)

	opts := []tea.ProgramOption{
		tea.WithOutput(w),
		tea.WithoutSignalHandler(),
		tea.WithAltScreen(),
	}

	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		opts = append(opts, tea.WithInput(nil))
	}

	return &TUIFormatter{
		program: tea.NewProgram(model, opts...),
		model:   model,
		out:     w,
	}
}

// Start begins the TUI event loop. Call it before the run starts.
func (t *TUIFormatter) Start() error {
	go func() {
		_, _ = t.program.Run()
	}()

	time.Sleep(20 * time.Millisecond)

	return nil
}

// Format sends an event to the TUI.
func (t *TUIFormatter) Format(event Event, _ *Result) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return nil
	}

	t.program.Send(queryEventMsg(event))

	return nil
}

// Summary waits for the user to quit, then prints the final view.
func (t *TUIFormatter) Summary(result *Result) error {
	t.mu.Lock()
	t.finished = true
	t.mu.Unlock()

	t.program.Send(doneMsg{result: result})
	t.program.Wait()

	_, err := io.WriteString(t.out, t.model.FinalView()+"\n")

	return err
}

type rowStatus int

const (
	statusPending rowStatus = iota
	statusRunning
	statusPass
	statusFail
	statusSkip
	statusError
)

// queryRow is one line of the query list.
type queryRow struct {
	index    int
	cypher   string
	status   rowStatus
	category graphil.Category
	gql      string
	elapsed  time.Duration
	err      error
}

type tuiModel struct {
	styles  *Styles
	spinner spinner.Model

	width  int
	height int

	source     string
	rows       []*queryRow
	categories map[graphil.Category]int
	done       int
	running    int

	startTime time.Time
	endTime   time.Time

	finalResult *Result
	isDone      bool

	scrollOffset int
	totalLines   int
}

type (
	tickMsg       time.Time
	queryEventMsg Event
	doneMsg       struct{ result *Result }
)

func newTUIModel(source string, queries []string) *tuiModel {
	styles := DefaultStyles()

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: SpinnerFrames(),
		FPS:    time.Second / 10,
	}
	s.Style = styles.Running

	rows := make([]*queryRow, len(queries))
	for i, q := range queries {
		rows[i] = &queryRow{index: i, cypher: q}
	}

	return &tuiModel{
		styles:     styles,
		spinner:    s,
		source:     source,
		rows:       rows,
		categories: make(map[graphil.Category]int),
		startTime:  time.Now(),
		width:      80,
		height:     24,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.tick())
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn // bubbletea.Model interface required by tea.Program
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.QuitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "q":
			if m.isDone {
				return m, tea.Quit
			}
		case "j", "down":
			if m.scrollOffset < m.maxScroll() {
				m.scrollOffset++
			}
		case "k", "up":
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}
		case "g", "home":
			m.scrollOffset = 0
		case "G", "end":
			m.scrollOffset = m.maxScroll()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case tickMsg:
		if !m.isDone {
			cmds = append(cmds, m.tick())
		}

	case spinner.TickMsg:
		if !m.isDone {
			var cmd tea.Cmd

			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case queryEventMsg:
		m.handleEvent(Event(msg))

	case doneMsg:
		m.isDone = true
		m.endTime = time.Now()
		m.finalResult = msg.result
	}

	return m, tea.Batch(cmds...)
}

func (m *tuiModel) tick() tea.Cmd { //nolint:funcorder
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

//nolint:funcorder
func (m *tuiModel) viewportHeight() int {
	// header, blank, blank, categories, summary, hint
	return max(m.height-6, 1)
}

//nolint:funcorder
func (m *tuiModel) maxScroll() int {
	return max(m.totalLines-m.viewportHeight(), 0)
}

func (m *tuiModel) handleEvent(event Event) { //nolint:funcorder
	if event.Index < 0 || event.Index >= len(m.rows) {
		return
	}

	row := m.rows[event.Index]

	switch event.Action {
	case ActionRun:
		row.status = statusRunning
		m.running++

		return
	case ActionPass:
		row.status = statusPass
	case ActionFail:
		row.status = statusFail
	case ActionSkip:
		row.status = statusSkip
	case ActionError:
		row.status = statusError
	case ActionOutput:
		return
	}

	if event.Action != ActionSkip && event.Action != ActionError {
		m.running--
	}

	row.category = event.Category
	row.gql = event.GQL
	row.elapsed = event.Elapsed
	row.err = event.Error

	if event.Category != "" {
		m.categories[event.Category]++
	}

	m.done++
}

// clearEOL is the ANSI escape sequence to clear from cursor to end of line.
const clearEOL = "\033[K"

// FinalView renders the query list and totals for printing after the TUI exits.
func (m *tuiModel) FinalView() string {
	lines := make([]string, 0, len(m.rows)+6)

	lines = append(lines, m.renderHeader(), "")
	lines = append(lines, m.renderRows()...)
	lines = append(lines, "", m.renderCategories(), m.renderSummaryWithProgress())

	return strings.Join(lines, "\n")
}

func (m *tuiModel) View() string {
	content := m.renderRows()
	m.totalLines = len(content)

	viewportH := m.viewportHeight()
	start := min(max(m.scrollOffset, 0), len(content))
	end := min(start+viewportH, len(content))

	lines := []string{m.renderHeader(), ""}

	if start > 0 {
		lines = append(lines, m.styles.Dim.Render("  ↑ more above"))
	}

	lines = append(lines, content[start:end]...)

	for i := end - start; i < viewportH && len(content) <= viewportH; i++ {
		lines = append(lines, "")
	}

	if end < len(content) {
		lines = append(lines, m.styles.Dim.Render("  ↓ more below"))
	}

	lines = append(lines, "", m.renderCategories(), m.renderSummaryWithProgress())

	if m.isDone {
		lines = append(lines, m.styles.Dim.Render("  Press ESC or q to exit"))
	}

	for i := range lines {
		lines[i] += clearEOL
	}

	return strings.Join(lines, "\n") + "\n"
}

func (m *tuiModel) renderHeader() string {
	logo := m.styles.Bold.Render("graphil")
	subtitle := m.styles.Dim.Render(" batch ")
	source := m.styles.Source.Render(m.source)

	var status string

	switch {
	case m.isDone && m.finalResult != nil && !m.finalResult.Ok():
		status = m.styles.Fail.Render("INCOMPLETE")
	case m.isDone:
		status = m.styles.Pass.Render("DONE")
	case m.running > 0:
		status = m.styles.Running.Render(fmt.Sprintf("translating %d", m.running))
	default:
		status = m.styles.Dim.Render("starting")
	}

	return logo + subtitle + source + "  " + status
}

// renderRows renders one line per query, plus a line with the GQL text or
// the error once the query is done.
func (m *tuiModel) renderRows() []string {
	lines := make([]string, 0, 2*len(m.rows))
	width := max(m.width-m.styles.CategoryWidth-16, 20)

	for _, row := range m.rows {
		label := strings.Repeat(" ", m.styles.CategoryWidth)
		if row.category != "" {
			label = m.styles.CategoryStyle(row.category).
				Width(m.styles.CategoryWidth).
				Render(row.category.Short())
		}

		dur := ""
		if row.status != statusPending && row.status != statusRunning {
			dur = m.styles.Dim.Render(fmt.Sprintf("  [%s]", formatDuration(row.elapsed)))
		}

		lines = append(lines, fmt.Sprintf("  %s %s %s %s%s",
			m.renderSymbol(row.status),
			m.styles.Dim.Render(fmt.Sprintf("%4d", row.index+1)),
			label,
			m.styles.Query.Render(truncate(row.cypher, width)),
			dur,
		))

		switch {
		case row.status == statusPass:
			lines = append(lines, m.styles.Dim.Render("         "+m.styles.SymbolArrow+" ")+
				m.styles.GQL.Render(truncate(row.gql, width)))
		case row.status == statusError && row.err != nil:
			lines = append(lines, m.styles.Dim.Render("         ")+
				m.styles.Error.Render(truncate(row.err.Error(), width)))
		}
	}

	return lines
}

func (m *tuiModel) renderSymbol(status rowStatus) string {
	switch status {
	case statusPending:
		return m.styles.Dim.Render(m.styles.SymbolPending)
	case statusRunning:
		return m.spinner.View()
	case statusPass:
		return m.styles.Pass.Render(m.styles.SymbolPass)
	case statusFail:
		return m.styles.Fail.Render(m.styles.SymbolFail)
	case statusSkip:
		return m.styles.Skip.Render(m.styles.SymbolSkip)
	case statusError:
		return m.styles.Error.Render(m.styles.SymbolFail)
	default:
		return " "
	}
}

func (m *tuiModel) renderCategories() string {
	sep := m.styles.Dim.Render(" │ ")
	parts := make([]string, 0, len(graphil.Categories()))

	for _, c := range graphil.Categories() {
		n := m.categories[c]

		style := m.styles.Dim
		if n > 0 {
			style = m.styles.CategoryStyle(c)
		}

		parts = append(parts, style.Render(fmt.Sprintf("%d %s", n, c.Short())))
	}

	return "  " + strings.Join(parts, sep)
}

func (m *tuiModel) renderSummaryWithProgress() string {
	total := len(m.rows)

	elapsed := time.Since(m.startTime)
	if !m.endTime.IsZero() {
		elapsed = m.endTime.Sub(m.startTime)
	}

	const barWidth = 20

	pct := 0.0
	if total > 0 {
		pct = min(float64(m.done)/float64(total), 1.0)
	}

	filled := max(min(int(pct*barWidth), barWidth), 0)
	filledChar, emptyChar := ProgressChars()
	bar := m.styles.ProgressFilled.Render(strings.Repeat(filledChar, filled)) +
		m.styles.ProgressEmpty.Render(strings.Repeat(emptyChar, barWidth-filled))

	return "  " + m.styles.Muted.Render(fmt.Sprintf("%d/%d queries", m.done, total)) + " " +
		bar + " " + m.styles.Dim.Render(fmt.Sprintf("[%s]", formatDuration(elapsed)))
}

// truncate shortens s to width cells on a single line.
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")

	if lipgloss.Width(s) <= width {
		return s
	}

	r := []rune(s)
	if len(r) > width-1 {
		r = r[:max(width-1, 0)]
	}

	return string(r) + "…"
}

// TUIHandler wraps TUIFormatter to implement Handler.
type TUIHandler struct {
	formatter *TUIFormatter
	stdout    io.Writer
	stderr    io.Writer
}

// NewTUIHandler creates a handler that uses the TUI formatter.
// Call SetQueries before Start to fill the query list.
func NewTUIHandler(stdout, stderr io.Writer) *TUIHandler {
	return &TUIHandler{stdout: stdout, stderr: stderr}
}

// SetQueries initializes the TUI with the queries of the run.
func (h *TUIHandler) SetQueries(source string, queries []string) {
	h.formatter = NewTUIFormatter(h.stdout, source, queries)
}

// Start initializes the TUI.
func (h *TUIHandler) Start() error {
	if h.formatter == nil {
		h.formatter = NewTUIFormatter(h.stdout, "", nil)
	}

	return h.formatter.Start()
}

// Event sends an event to the TUI.
func (h *TUIHandler) Event(_ context.Context, event Event, result *Result) error {
	if h.formatter == nil {
		return nil
	}

	return h.formatter.Format(event, result)
}

// Err writes to stderr.
func (h *TUIHandler) Err(text string) error {
	_, err := fmt.Fprintln(h.stderr, text)

	return err
}

// Summary renders the final summary.
func (h *TUIHandler) Summary(result *Result) error {
	if h.formatter == nil {
		return nil
	}

	return h.formatter.Summary(result)
}
