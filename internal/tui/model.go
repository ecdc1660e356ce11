// Package tui is the terminal browser: regions, trainers and team detail in
// three panes, driven by guide.State.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/albapepper/pokestory-guide/internal/guide"
	"github.com/albapepper/pokestory-guide/internal/imgsrc"
	"github.com/albapepper/pokestory-guide/internal/metrics"
	"github.com/albapepper/pokestory-guide/internal/model"
)

// Pane is the focused column.
type Pane int

const (
	PaneRegions Pane = iota
	PaneTrainers
	PaneTeams
	paneCount
)

type resultMsg struct{ res guide.Result }

type imageMsg struct {
	key string
	url string
}

// Model is the bubbletea model of one browsing session.
type Model struct {
	ctx     context.Context
	loader  *guide.Loader
	prober  *imgsrc.Prober
	metrics *metrics.Metrics
	styles  Styles

	state   guide.State
	pending []guide.Fetch
	focus   Pane
	cursor  [paneCount]int
	images  map[string]string
	status  string

	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
}

// New creates a browser starting on region. prober and m may be nil; a nil
// prober skips image resolution.
func New(ctx context.Context, loader *guide.Loader, prober *imgsrc.Prober, m *metrics.Metrics, region model.RegionID) Model {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	state, fetches := guide.Init(region)
	return Model{
		ctx:      ctx,
		loader:   loader,
		prober:   prober,
		metrics:  m,
		styles:   styles,
		state:    state,
		pending:  fetches,
		images:   make(map[string]string),
		spinner:  sp,
		viewport: viewport.New(60, 20),
		width:    120,
		height:   30,
	}
}

// State returns the current selection state.
func (m Model) State() guide.State { return m.state }

// Focus returns the focused pane.
func (m Model) Focus() Pane { return m.focus }

// Image returns the resolved URL for a trainer sprite, if known.
func (m Model) Image(trainerID string) (string, bool) {
	url, ok := m.images[trainerID]
	return url, ok
}

// Init starts the initial fetches.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	for _, f := range m.pending {
		cmds = append(cmds, m.fetch(f))
	}
	return tea.Batch(cmds...)
}

func (m Model) fetch(f guide.Fetch) tea.Cmd {
	ctx, loader := m.ctx, m.loader
	return func() tea.Msg {
		return resultMsg{res: loader.Run(ctx, f)}
	}
}

func (m Model) fetchAll(fetches []guide.Fetch) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(fetches))
	for _, f := range fetches {
		cmds = append(cmds, m.fetch(f))
	}
	return tea.Batch(cmds...)
}

func (m Model) resolve(key string, candidates []string) tea.Cmd {
	if m.prober == nil {
		return nil
	}
	ctx, prober, rec := m.ctx, m.prober, m.metrics
	return func() tea.Msg {
		url, err := prober.Resolve(ctx, imgsrc.New(candidates...))
		if err != nil {
			return nil
		}
		rec.RecordImageResolution(url == imgsrc.Placeholder)
		return imageMsg{key: key, url: url}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.viewport.SetContent(next.viewDetail(guide.Render(next.state).Detail))
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = max(msg.Width/2-4, 20)
		m.viewport.Height = max(msg.Height-8, 5)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultMsg:
		next, fetches, applied := m.state.Apply(msg.res)
		if !applied {
			m.metrics.RecordStale(msg.res.Fetch.Kind.String())
			return m, nil
		}
		m.state = next
		m.clampCursors()
		return m, m.fetchAll(fetches)

	case imageMsg:
		m.images[msg.key] = msg.url
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "tab", "right", "l":
		m.focus = (m.focus + 1) % paneCount
	case "shift+tab", "left", "h":
		m.focus = (m.focus + paneCount - 1) % paneCount
	case "up", "k":
		if m.cursor[m.focus] > 0 {
			m.cursor[m.focus]--
		}
	case "down", "j":
		if m.cursor[m.focus] < m.paneLen(m.focus)-1 {
			m.cursor[m.focus]++
		}
	case "r":
		return m.selectRegion(m.state.Region)
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case "enter", " ":
		return m.choose()
	}
	return m, nil
}

func (m Model) choose() (Model, tea.Cmd) {
	i := m.cursor[m.focus]
	switch m.focus {
	case PaneRegions:
		if i < len(m.state.Regions) {
			return m.selectRegion(m.state.Regions[i].ID)
		}
	case PaneTrainers:
		trainers := m.trainerOrder()
		if i >= len(trainers) {
			return m, nil
		}
		t := trainers[i]
		next, fetches, err := m.state.SelectTrainer(t.ID)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.state, m.status = next, ""
		m.cursor[PaneTeams] = 0
		cmds := []tea.Cmd{m.fetchAll(fetches)}
		if _, ok := m.images[t.ID]; !ok {
			cmds = append(cmds, m.resolve(t.ID, t.SpriteURLs))
		}
		return m, tea.Batch(cmds...)
	case PaneTeams:
		next, fetches, err := m.state.SelectTeam(i)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.state, m.status = next, ""
		return m, m.fetchAll(fetches)
	}
	return m, nil
}

func (m Model) selectRegion(region model.RegionID) (Model, tea.Cmd) {
	next, fetches := m.state.SelectRegion(region)
	m.state, m.status = next, ""
	m.cursor[PaneTrainers] = 0
	m.cursor[PaneTeams] = 0
	return m, m.fetchAll(fetches)
}

// trainerOrder flattens the role buckets into cursor order.
func (m Model) trainerOrder() []model.Trainer {
	var out []model.Trainer
	for _, b := range guide.Buckets(m.state.Trainers) {
		out = append(out, b.Trainers...)
	}
	return out
}

func (m Model) paneLen(p Pane) int {
	switch p {
	case PaneRegions:
		return len(m.state.Regions)
	case PaneTrainers:
		return len(m.state.Trainers)
	case PaneTeams:
		return len(m.state.Teams)
	}
	return 0
}

func (m *Model) clampCursors() {
	for p := PaneRegions; p < paneCount; p++ {
		if n := m.paneLen(p); m.cursor[p] >= n {
			m.cursor[p] = max(n-1, 0)
		}
	}
	if m.state.TeamIndex >= 0 {
		m.cursor[PaneTeams] = m.state.TeamIndex
	}
}

// View renders the three panes.
func (m Model) View() string {
	page := guide.Render(m.state)

	colWidth := max(m.width/4-2, 18)
	regions := m.paneStyle(PaneRegions).Width(colWidth).Render(m.viewRegions(page))
	trainers := m.paneStyle(PaneTrainers).Width(colWidth).Render(m.viewTrainers(page))

	detail := m.paneStyle(PaneTeams).Width(max(m.width-2*colWidth-8, 30)).Render(m.viewport.View())

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("PokeStory Guide"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, regions, trainers, detail))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("tab switch pane • ↑/↓ move • enter select • r reload • pgup/pgdn scroll • q quit"))
	return b.String()
}

func (m Model) paneStyle(p Pane) lipgloss.Style {
	if m.focus == p {
		return m.styles.Focused
	}
	return m.styles.Pane
}

func (m Model) line(p Pane, i int, text string, selected bool) string {
	prefix := "  "
	if m.focus == p && m.cursor[p] == i {
		prefix = m.styles.Cursor.Render("> ")
	}
	if selected {
		return prefix + m.styles.Selected.Render(text)
	}
	return prefix + m.styles.Item.Render(text)
}

func (m Model) viewRegions(page guide.Page) string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Regions"))
	b.WriteString("\n")
	if page.RegionMessage != "" {
		b.WriteString(m.spinner.View() + " " + m.styles.Muted.Render(page.RegionMessage))
		return b.String()
	}
	for i, r := range page.Regions {
		b.WriteString(m.line(PaneRegions, i, r.Name, r.Selected))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewTrainers(page guide.Page) string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Trainers"))
	b.WriteString("\n")
	if page.Message != "" {
		if m.state.TrainersLoading {
			b.WriteString(m.spinner.View() + " ")
		}
		b.WriteString(m.styles.Muted.Render(page.Message))
		return b.String()
	}
	i := 0
	for _, sec := range page.Sections {
		b.WriteString(m.styles.Muted.Render(sec.Title))
		b.WriteString("\n")
		for _, c := range sec.Cards {
			text := c.Name
			if c.Subtitle != "" {
				text += " (" + c.Subtitle + ")"
			}
			b.WriteString(m.line(PaneTrainers, i, text, c.Selected))
			b.WriteString("\n")
			i++
		}
	}
	return b.String()
}

func (m Model) viewDetail(d *guide.TeamDetail) string {
	if d == nil {
		return m.styles.Muted.Render("Select a trainer to see their team.")
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(d.Trainer))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(d.Info))
	b.WriteString("\n")
	if d.Prerequisites != "" {
		b.WriteString(m.styles.Muted.Render(d.Prerequisites))
		b.WriteString("\n")
	}
	if url, ok := m.images[m.state.TrainerID]; ok {
		if url == imgsrc.Placeholder {
			b.WriteString(m.styles.Muted.Render("Sprite: image not available"))
		} else {
			b.WriteString(m.styles.Muted.Render("Sprite: " + url))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var tabs []string
	for i, label := range d.Tabs {
		style := m.styles.Tab
		if i == d.Selected {
			style = m.styles.ActiveTab
		}
		tab := style.Render(label)
		if m.focus == PaneTeams && m.cursor[PaneTeams] == i && i != d.Selected {
			tab = m.styles.Cursor.Render(">") + tab
		}
		tabs = append(tabs, tab)
	}
	if len(tabs) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
		b.WriteString("\n\n")
	}

	if d.Message != "" {
		if d.Loading {
			b.WriteString(m.spinner.View() + " ")
		}
		b.WriteString(m.styles.Muted.Render(d.Message))
		b.WriteString("\n")
	}

	for _, p := range d.Party {
		b.WriteString(fmt.Sprintf("%s  %s\n", m.styles.Item.Bold(true).Render(p.Name), m.styles.Muted.Render(p.Heading)))
		if len(p.Types) > 0 {
			b.WriteString("    " + m.styles.Muted.Render(strings.Join(p.Types, " / ")) + "\n")
		}
		if len(p.Moves) > 0 {
			b.WriteString("    " + strings.Join(p.Moves, ", ") + "\n")
		}
	}

	if len(d.Tiers) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Header.Render("Counters"))
		b.WriteString("\n")
	}
	for _, tier := range d.Tiers {
		b.WriteString(m.styles.Tier.Render(tier.Title))
		b.WriteString("\n")
		for _, c := range tier.Rows {
			b.WriteString(fmt.Sprintf("  %s %s\n", m.styles.Item.Bold(true).Render(c.Name), m.styles.Muted.Render(c.Level)))
			if c.Rationale != "" {
				b.WriteString("    " + c.Rationale + "\n")
			}
			if c.Moves != "" {
				b.WriteString("    " + m.styles.Muted.Render("Moves: "+c.Moves) + "\n")
			}
			b.WriteString("    " + m.styles.Muted.Render(c.Obtain) + "\n")
		}
	}
	return b.String()
}
