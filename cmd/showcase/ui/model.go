package ui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"showcase/internal/gallery"
	"showcase/internal/logging"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// endOfResults is shown once every matching project is on screen.
const endOfResults = "🎉 You've reached the end!"

// ingestWarnThreshold flags datasets slow enough to notice at startup.
const ingestWarnThreshold = 50 * time.Millisecond

// Options configures a gallery Model.
type Options struct {
	PageSize        int
	Debounce        time.Duration
	LoadDelay       time.Duration
	ScrollThreshold int
	CardWidth       int
	ShowTags        bool
	LegacyLiveDemo  bool
	InitialQuery    string

	// Rand drives the shuffle. nil uses the global source.
	Rand   *rand.Rand
	Styles *Styles
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = gallery.DefaultPageSize
	}
	if o.Debounce <= 0 {
		o.Debounce = gallery.DefaultDebounce
	}
	if o.LoadDelay < 0 {
		o.LoadDelay = 0
	}
	if o.ScrollThreshold < 0 {
		o.ScrollThreshold = gallery.DefaultScrollThreshold
	}
	if o.CardWidth <= 0 {
		o.CardWidth = 38
	}
	return o
}

type focusArea int

const (
	focusGrid focusArea = iota
	focusSearch
)

// querySettledMsg is delivered when the search field has been quiet for the
// debounce period.
type querySettledMsg struct{ seq uint64 }

// loadDoneMsg is delivered when the simulated page fetch finishes.
type loadDoneMsg struct{ ticket gallery.LoadTicket }

// DatasetReloadedMsg replaces the gallery contents, for example after the
// dataset file changed on disk.
type DatasetReloadedMsg struct {
	Groups []gallery.ContributorGroup
}

// Model is the interactive project gallery.
type Model struct {
	opts   Options
	styles Styles
	keys   KeyMap

	search  textinput.Model
	spinner spinner.Model
	grid    viewport.Model
	detail  viewport.Model
	help    help.Model

	state    gallery.State
	debounce gallery.Debounce[string]

	width, height int
	layout        LayoutConfig
	rowOffsets    []int
	ready         bool

	cursor     int
	focus      focusArea
	showDetail bool
	status     string
}

// NewModel builds a gallery over groups. The projects are shuffled once
// here; the first page is visible immediately.
func NewModel(groups []gallery.ContributorGroup, opts Options) Model {
	opts = opts.withDefaults()

	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	ti := textinput.New()
	ti.Placeholder = "Search projects by title..."
	ti.Prompt = "🔍 "
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.UserInput
	ti.SetValue(opts.InitialQuery)

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Spinner),
	)

	timer := logging.StartTimer(logging.CategoryGallery, "ingest")
	state := gallery.Ingest(groups, opts.Rand, opts.PageSize)
	if opts.InitialQuery != "" {
		state = gallery.ApplyQuery(state, opts.InitialQuery)
	}
	timer.StopWithThreshold(ingestWarnThreshold)
	logging.Gallery("ingested %d projects from %d contributors", len(state.All()), len(groups))

	return Model{
		opts:    opts,
		styles:  styles,
		keys:    DefaultKeyMap(),
		search:  ti,
		spinner: sp,
		grid:    viewport.New(0, 0),
		detail:  viewport.New(0, 0),
		help:    help.New(),
		state:   state,
	}
}

// State returns the list state currently on screen.
func (m Model) State() gallery.State { return m.state }

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case querySettledMsg:
		var q string
		var ok bool
		m.debounce, q, ok = m.debounce.Settle(msg.seq)
		if !ok || q == m.state.Query() {
			return m, nil
		}
		m.state = gallery.ApplyQuery(m.state, q)
		m.cursor = 0
		logging.GalleryDebug("query %q matched %d of %d", q, len(m.state.Filtered()), len(m.state.All()))
		m.refresh()
		m.grid.GotoTop()
		return m, nil

	case loadDoneMsg:
		before := len(m.state.Visible())
		m.state = gallery.CompleteLoad(m.state, msg.ticket)
		if n := len(m.state.Visible()); n != before {
			logging.GalleryDebug("page loaded: %d -> %d visible", before, n)
		}
		m.refresh()
		return m, nil

	case DatasetReloadedMsg:
		// A page requested against the old projects never lands
		m.state = gallery.Reingest(gallery.CancelLoad(m.state), msg.Groups, m.opts.Rand)
		m.cursor = 0
		m.status = m.styles.Success.Render(fmt.Sprintf("Reloaded %d projects", len(m.state.All())))
		logging.UI("dataset reloaded: %d projects", len(m.state.All()))
		m.refresh()
		m.grid.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.showDetail {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
		var cmd, loadCmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		m, loadCmd = m.checkScroll()
		return m, tea.Batch(cmd, loadCmd)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.status = ""
		if m.showDetail {
			return m.updateDetail(msg)
		}
		if m.focus == focusSearch {
			return m.updateSearch(msg)
		}
		return m.updateGrid(msg)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab", "enter", "down":
		m.focus = focusGrid
		m.search.Blur()
		m.refresh()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	var seq uint64
	m.debounce, seq = m.debounce.Bump(m.search.Value())
	return m, tea.Batch(cmd, settleAfter(m.opts.Debounce, seq))
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := len(m.state.Visible())
	cols := max(m.layout.Columns, 1)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		m.refresh()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeGrid()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if p, ok := m.focused(); ok {
			m.openDetail(p)
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copyFocused()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-cols)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(cols)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp):
		m.grid.SetYOffset(m.grid.YOffset - m.grid.Height)
		m.cursorToOffset()
	case key.Matches(msg, m.keys.PageDown):
		m.grid.SetYOffset(m.grid.YOffset + m.grid.Height)
		m.cursorToOffset()
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.refresh()
		m.grid.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		if visible > 0 {
			m.cursor = visible - 1
		}
		m.refresh()
		m.grid.GotoBottom()

	default:
		return m, nil
	}

	return m.checkScroll()
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Quit):
		m.showDetail = false
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copyFocused()
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// checkScroll is run after every scroll event. When the viewport is near the
// bottom of the content the next page starts loading.
func (m Model) checkScroll() (Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	if !gallery.NearBottom(m.grid.YOffset, m.grid.Height, m.grid.TotalLineCount(), m.opts.ScrollThreshold) {
		return m, nil
	}
	next, ticket, ok := gallery.BeginLoad(m.state)
	if !ok {
		if logging.IsCategoryEnabled(logging.CategoryUI) {
			logging.UIDebug("near bottom at offset %d, no load (loading=%t end=%t)", m.grid.YOffset, m.state.Loading(), m.state.AtEnd())
		}
		return m, nil
	}
	m.state = next
	m.refresh()
	logging.GalleryDebug("loading page at offset %d", ticket.Offset)
	return m, tea.Batch(loadAfter(m.opts.LoadDelay, ticket), m.spinner.Tick)
}

func settleAfter(d time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return querySettledMsg{seq: seq}
	})
}

func loadAfter(d time.Duration, ticket gallery.LoadTicket) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return loadDoneMsg{ticket: ticket}
	})
}

func (m *Model) focused() (gallery.Project, bool) {
	visible := m.state.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return gallery.Project{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) copyFocused() {
	p, ok := m.focused()
	if !ok || p.GithubURL == "" {
		return
	}
	if err := clipboardWriteAll(p.GithubURL); err != nil {
		logging.Get(logging.CategoryUI).Warn("clipboard write failed: %v", err)
		m.status = m.styles.Error.Render("Failed to copy link")
		return
	}
	m.status = m.styles.Success.Render("Copied " + p.GithubURL)
}

func (m *Model) openDetail(p gallery.Project) {
	width := max(m.width-DetailChromeHeight*2, 20)
	m.detail.Width = width
	m.detail.Height = max(m.height-DetailChromeHeight*2, 3)
	m.detail.SetContent(renderMarkdown(projectMarkdown(p, m.opts.LegacyLiveDemo), width, m.styles.Theme.IsDark))
	m.detail.GotoTop()
	m.showDetail = true
}

func (m *Model) moveCursor(delta int) {
	n := len(m.state.Visible())
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.refresh()
	m.revealCursor()
}

// revealCursor scrolls the grid so the focused card's row is on screen.
func (m *Model) revealCursor() {
	row := m.layout.RowOf(m.cursor)
	if row >= len(m.rowOffsets) {
		return
	}
	top := m.rowOffsets[row]
	bottom := top + cardHeight + 2
	switch {
	case top < m.grid.YOffset:
		m.grid.SetYOffset(top)
	case bottom > m.grid.YOffset+m.grid.Height:
		m.grid.SetYOffset(bottom - m.grid.Height)
	}
}

// cursorToOffset moves focus to the first card row at or below the scroll
// position after paging.
func (m *Model) cursorToOffset() {
	n := len(m.state.Visible())
	for row, off := range m.rowOffsets {
		if off >= m.grid.YOffset {
			idx := row * max(m.layout.Columns, 1)
			if idx < n {
				m.cursor = idx
			}
			break
		}
	}
	m.refresh()
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.layout = NewLayoutConfig(width, height, m.opts.CardWidth)
	m.search.Width = max(width-6, 10)
	m.help.Width = width
	m.ready = true
	m.resizeGrid()
	if m.showDetail {
		if p, ok := m.focused(); ok {
			m.openDetail(p)
		}
	}
}

func (m *Model) resizeGrid() {
	m.grid.Width = m.width
	m.grid.Height = max(m.height-m.chromeHeight(), 1)
	m.refresh()
}

// chromeHeight counts the lines drawn around the grid.
func (m Model) chromeHeight() int {
	h := 4 // header, search, divider, status
	if m.opts.ShowTags {
		h++
	}
	return h + lipgloss.Height(m.help.View(m.keys))
}

// refresh re-renders the grid content from the current state.
func (m *Model) refresh() {
	visible := m.state.Visible()
	if m.cursor >= len(visible) {
		m.cursor = max(len(visible)-1, 0)
	}

	width := m.layout.CardWidth
	cards := make([]string, 0, len(visible)+m.state.SkeletonCount())
	for i, p := range visible {
		cards = append(cards, RenderCard(m.styles, p, CardOptions{
			Width:          width,
			Focused:        i == m.cursor && m.focus == focusGrid,
			LegacyLiveDemo: m.opts.LegacyLiveDemo,
		}))
	}
	for i := 0; i < m.state.SkeletonCount(); i++ {
		cards = append(cards, RenderSkeleton(m.styles, width))
	}

	grid, offsets := RenderGrid(cards, m.layout.Columns)
	m.rowOffsets = offsets

	var sb strings.Builder
	sb.WriteString(grid)
	if m.state.AtEnd() {
		if grid != "" {
			sb.WriteString("\n\n")
		}
		sb.WriteString(m.styles.End.Width(m.width).Render(endOfResults))
	}
	m.grid.SetContent(sb.String())
}

// View renders the gallery.
func (m Model) View() string {
	if !m.ready {
		return "Loading projects..."
	}
	if m.showDetail {
		return lipgloss.NewStyle().Padding(1, DetailChromeHeight).Render(m.detail.View()) + "\n" +
			m.styles.Footer.Render("esc back • y copy github url")
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	if m.opts.ShowTags {
		sb.WriteString(RenderTagStrip(m.styles, m.width, 0))
		sb.WriteString("\n")
	}
	sb.WriteString(m.search.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.RenderDivider(m.width))
	sb.WriteString("\n")
	sb.WriteString(m.grid.View())
	sb.WriteString("\n")
	sb.WriteString(m.renderStatus())
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) renderHeader() string {
	counts := fmt.Sprintf("%d of %d projects", len(m.state.Visible()), len(m.state.Filtered()))
	if q := m.state.Query(); q != "" {
		counts += fmt.Sprintf(" matching %q", q)
	}
	return m.styles.Header.Render("Project Display") + m.styles.Muted.Render(counts)
}

func (m Model) renderStatus() string {
	switch {
	case m.status != "":
		return m.styles.Footer.Render(m.status)
	case m.state.Loading():
		return m.styles.Footer.Render(m.spinner.View() + " Loading more projects...")
	case m.debounce.Pending():
		return m.styles.Footer.Render("Searching...")
	default:
		return ""
	}
}
