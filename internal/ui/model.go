package ui

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"vselect/internal/config"
	"vselect/internal/domain"
	"vselect/internal/eventbus"
	"vselect/internal/idgen"
	"vselect/internal/ui/field"
	"vselect/internal/ui/options"
	"vselect/internal/ui/scheduler"
	"vselect/internal/ui/services/navigation"
	"vselect/internal/ui/services/overlay"
	"vselect/internal/ui/services/search"
	"vselect/internal/ui/viewport"
	"vselect/internal/ui/views"
)

// Lines taken by everything around the panel: title, field, hint, status,
// help and the panel's own border and indicators
const chromeLines = 16

// Model is the demo program hosting one select field over a large list
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	width  int
	height int
	help   help.Model
	keys   appKeys
	ready  bool

	options []domain.Option[string]
	labels  map[string]string

	list   *options.QueryList[string]
	field  *field.Field[string]
	engine *viewport.Engine[string]
	search *search.Service[string]

	searchInput textinput.Model
	searching   bool

	renderer      *views.Renderer
	helpRender    *HelpRenderer
	inPagerMode   bool
	statusMessage string
	statusSeq     int
	pendingStatus tea.Cmd

	unsubs []func()

	// Program reference for terminal management
	program *tea.Program
	helpOps *HelpOps
}

// NewModel creates the demo model over opts
func NewModel(bus eventbus.EventBus, cfg *config.Config, opts []domain.Option[string]) *Model {
	ids := idgen.NewCounter()
	list := options.NewQueryList[string]()

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search"
	ti.CharLimit = 64

	m := &Model{
		bus:         bus,
		config:      cfg,
		help:        help.New(),
		keys:        defaultAppKeys(),
		options:     opts,
		labels:      make(map[string]string, len(opts)),
		list:        list,
		search:      search.NewService[string](bus),
		searchInput: ti,
		renderer:    views.NewRenderer(),
		helpRender:  NewHelpRenderer(),
	}
	for _, opt := range opts {
		m.labels[opt.Value] = opt.Label
	}

	fc := field.Config{
		Multiple:          cfg.Field.Multiple,
		PanelWidth:        cfg.Field.OverlayWidth(),
		TypeaheadDebounce: cfg.Field.TypeaheadDebounce(),
		ReconcileDebounce: cfg.Field.ReconcileDebounce(),
		Wrap:              cfg.Field.Wrap,
		PageStride:        cfg.Field.PageStride,
		SelectOnTabOut:    cfg.Field.SelectOnTabOut,
		Placeholder:       cfg.Field.Placeholder,
		Required:          cfg.Field.Required,
	}
	host := overlay.MeasureFunc(func() int { return m.width - 4 })
	m.field = field.New[string](fc, list, bus, scheduler.New(), ids, host)
	m.field.SetOverlayOrigin(overlay.MeasureFunc(func() int { return m.renderer.TriggerWidth(m.width) }))
	m.field.SetDescribedByIDs([]string{m.field.ID() + "-hint", m.field.ID() + "-error"})

	// the demo has a single control, so it starts focused
	m.field.FocusOriginChanged(domain.FocusProgram)

	m.engine = viewport.New[string](list, bus, m.field, ids, m.field.ID())
	m.engine.SetItems(opts)
	m.engine.SetHeight(cfg.UI.VisibleRows)
	m.field.SetWindow(m.engine)
	m.search.SetOptions(opts)

	m.unsubs = append(m.unsubs,
		bus.Subscribe(eventbus.EventPanelOpened, func(eventbus.DomainEvent) { m.revealSelection() }),
		bus.Subscribe(eventbus.EventValueChanged, m.onValueChanged),
		bus.Subscribe(eventbus.EventSearchChanged, m.onSearchChanged),
	)
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Field returns the hosted select field
func (m *Model) Field() *field.Field[string] {
	return m.field
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.field.Init(), textinput.Blink)
}

// Update handles messages. The field sees every message last so its
// stable checkpoint runs after the host acted on the message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		if !m.ready {
			m.ready = true
			cmds = append(cmds, func() tea.Msg { return readyMsg{} })
		}

	case readyMsg:
		if os.Getenv("VSELECT_E2E_TEST") == "1" {
			fmt.Fprint(os.Stderr, "__READY__")
		}

	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			m.shutdown()
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			log.Printf("Help pager failed: %v", msg.err)
		}

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
		}
	}

	cmds = append(cmds, m.field.Update(msg))
	if m.pendingStatus != nil {
		cmds = append(cmds, m.pendingStatus)
		m.pendingStatus = nil
	}
	return m, tea.Batch(cmds...)
}

// handleKey routes a key press; quit reports whether the program should end
func (m *Model) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, quit bool) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return nil, true
	}
	if m.searching {
		return m.handleSearchKey(msg), false
	}

	if !m.field.PanelOpen() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return nil, true
		case key.Matches(msg, m.keys.Help):
			if m.program == nil {
				return nil, false
			}
			return m.fetchHelpPager(m.helpRender.RenderHelpContent()), false
		case key.Matches(msg, m.keys.Focus):
			if m.field.Focused() {
				m.field.Blur()
			} else {
				m.field.FocusOriginChanged(domain.FocusKeyboard)
			}
			return nil, false
		}
		m.field.HandleKey(msg)
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m.searchInput.Focus(), false
	case key.Matches(msg, m.keys.HalfDown):
		m.scrollBy(m.engine.Height() / 2)
		return nil, false
	case key.Matches(msg, m.keys.HalfUp):
		m.scrollBy(-m.engine.Height() / 2)
		return nil, false
	}
	if m.navigate(msg) {
		return nil, false
	}
	m.field.HandleKey(msg)
	if !m.field.PanelOpen() && m.search.Active() {
		m.endSearch()
	}
	return nil, false
}

// handleSearchKey feeds the search box. Navigation keys still reach the panel.
func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.SearchExit):
		m.endSearch()
		return nil
	case key.Matches(msg, m.keys.SearchDone):
		m.searching = false
		m.searchInput.Blur()
		return nil
	case msg.Type == tea.KeyUp, msg.Type == tea.KeyDown, msg.Type == tea.KeyPgUp, msg.Type == tea.KeyPgDown:
		if !m.navigate(msg) {
			m.field.HandleKey(msg)
		}
		return nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.search.StartSearch(m.searchInput.Value())
	return cmd
}

// endSearch drops the query and shows every option again
func (m *Model) endSearch() {
	m.searching = false
	m.searchInput.Blur()
	m.searchInput.Reset()
	m.search.ClearSearch()
}

// onSearchChanged narrows the panel to the matching options
func (m *Model) onSearchChanged(e eventbus.DomainEvent) {
	ev, ok := e.(domain.SearchChangedEvent)
	if !ok {
		return
	}
	matches := m.search.GetMatches()
	items := make([]domain.Option[string], len(matches))
	for i, idx := range matches {
		items[i] = m.options[idx]
	}
	m.engine.SetItems(items)
	m.engine.ScrollTo(0)

	nav := m.field.Navigation()
	nav.ClearActive()
	if m.field.PanelOpen() {
		nav.Navigate(navigation.DirectionHome)
	}
	if ev.Query != "" {
		m.setStatus(fmt.Sprintf("%d matches for %q", ev.MatchCount, ev.Query))
	}
}

func (m *Model) onValueChanged(e eventbus.DomainEvent) {
	ev, ok := e.(domain.ValueChangedEvent[string])
	if !ok {
		return
	}
	switch len(ev.Values) {
	case 0:
		m.setStatus("Selection cleared")
	case 1:
		m.setStatus("Selected: " + m.labels[ev.Values[0]])
	default:
		m.setStatus(fmt.Sprintf("%d options selected", len(ev.Values)))
	}
}

// revealSelection scrolls the first selected option into view and makes it
// active when the panel opens
func (m *Model) revealSelection() {
	values := m.field.Value()
	if len(values) == 0 {
		m.field.Navigation().Navigate(navigation.DirectionHome)
		return
	}
	first := values[0]
	idx := m.engine.IndexOf(func(opt domain.Option[string]) bool { return opt.Value == first })
	if idx < 0 {
		return
	}
	m.engine.EnsureVisible(idx)
	m.field.Navigation().SetActiveIndex(idx - m.engine.Offset())
}

// navigate moves the window along with the active option for the keys that
// would otherwise stop at the window's edge. It reports whether the key was
// handled completely.
func (m *Model) navigate(msg tea.KeyMsg) bool {
	nav := m.field.Navigation()
	keys := nav.KeyMap()
	if msg.Alt {
		return false
	}
	idx := nav.ActiveIndex()
	last := m.list.Len() - 1
	offset := m.engine.Offset()
	total := m.engine.Total()

	switch {
	case key.Matches(msg, keys.Down):
		if idx != last || last < 0 {
			return false
		}
		switch {
		case offset+m.list.Len() < total:
			m.engine.ScrollBy(1)
		case m.config.Field.Wrap && offset > 0:
			m.engine.ScrollTo(0)
			nav.ClearActive()
		}
		return false
	case key.Matches(msg, keys.Up):
		if idx != 0 {
			return false
		}
		switch {
		case offset > 0:
			m.engine.ScrollBy(-1)
		case m.config.Field.Wrap && total > m.list.Len():
			m.engine.ScrollTo(total)
			nav.ClearActive()
		}
		return false
	case key.Matches(msg, keys.Home):
		m.engine.ScrollTo(0)
		nav.Navigate(navigation.DirectionHome)
		return true
	case key.Matches(msg, keys.End):
		m.engine.ScrollTo(total)
		nav.Navigate(navigation.DirectionEnd)
		return true
	case key.Matches(msg, keys.PageDown):
		m.page(m.config.Field.PageStride)
		return true
	case key.Matches(msg, keys.PageUp):
		m.page(-m.config.Field.PageStride)
		return true
	}
	return false
}

// page moves the active option by delta options across the whole list
func (m *Model) page(delta int) {
	nav := m.field.Navigation()
	target := nav.ActiveOption()
	if target < 0 {
		target = m.engine.Offset()
	}
	target = max(0, min(target+delta, m.engine.Total()-1))
	m.engine.EnsureVisible(target)

	direction := navigation.DirectionDown
	if delta < 0 {
		direction = navigation.DirectionUp
	}
	nav.SetActiveIndex(target - m.engine.Offset())
	if active := nav.ActiveItem(); active != nil && active.Disabled() {
		nav.Navigate(direction)
	}
}

func (m *Model) scrollBy(delta int) {
	if delta == 0 {
		delta = 1
	}
	m.engine.ScrollBy(delta)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.field.Disabled() {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		if m.field.PanelOpen() {
			m.scrollBy(3)
		}
		return
	case tea.MouseButtonWheelUp:
		if m.field.PanelOpen() {
			m.scrollBy(-3)
		}
		return
	case tea.MouseButtonLeft:
	default:
		return
	}
	if msg.Action != tea.MouseActionPress {
		return
	}

	layout := m.renderer.Layout()
	if msg.Y >= layout.TriggerTop && msg.Y <= layout.TriggerBottom &&
		msg.X >= layout.TriggerLeft && msg.X <= layout.TriggerRight {
		if m.field.PanelOpen() {
			m.field.ClosePanel()
		} else {
			m.field.OnContainerClick()
		}
		return
	}
	if layout.FirstRow < 0 {
		return
	}
	row := msg.Y - layout.FirstRow
	views := m.list.Views()
	if row >= 0 && row < len(views) {
		m.field.Click(views[row])
	}
}

func (m *Model) updateViewportHeight() {
	rows := m.config.UI.VisibleRows
	if avail := m.height - chromeLines; avail < rows {
		rows = max(avail, 1)
	}
	m.engine.SetHeight(rows)
}

func (m *Model) setStatus(s string) {
	m.statusMessage = s
	m.statusSeq++
	seq := m.statusSeq
	m.pendingStatus = tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{
			err: err,
		}
	}
}

func (m *Model) shutdown() {
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
	m.field.Destroy()
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}
	return m.renderer.Render(m.buildViewState())
}

func (m *Model) buildViewState() views.ViewState {
	f := m.field
	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Label:         m.config.Field.Label,
		LabelFloat:    f.ShouldLabelFloat(),
		TriggerText:   m.triggerText(),
		Focused:       f.Focused(),
		Disabled:      f.Disabled(),
		PanelOpen:     f.PanelOpen(),
		PanelWidth:    f.OverlayWidth(),
		Multiple:      f.Multiple(),
		Offset:        m.engine.Offset(),
		Total:         m.engine.Total(),
		Searching:     m.searching,
		SearchInput:   m.searchInput.View(),
		SearchQuery:   m.search.GetQuery(),
		MatchCount:    m.search.GetMatchCount(),
		StatusMessage: m.statusMessage,
		HelpModel:     m.help,
	}
	if !f.HidePlaceholder() {
		state.Placeholder = f.Placeholder()
	}
	if f.ErrorState() {
		state.ErrorText = f.ValidationError().Error()
	} else if f.Required() {
		state.Hint = "Required"
	}

	switch {
	case m.searching:
		state.Keys = searchHelp{app: m.keys, nav: f.Navigation().KeyMap()}
	case f.PanelOpen():
		state.Keys = openHelp{app: m.keys, field: f.Keys(), nav: f.Navigation().KeyMap()}
	default:
		state.Keys = closedHelp{app: m.keys, field: f.Keys()}
	}

	if f.PanelOpen() {
		for _, v := range m.list.Views() {
			state.Rows = append(state.Rows, views.Row{
				Label:    v.Label(),
				Selected: v.Selected(),
				Active:   v.Active(),
				Disabled: v.Disabled(),
			})
		}
	}
	return state
}

// triggerText shows the committed value: the label in single mode, the first
// label and a count of the others in multiple mode
func (m *Model) triggerText() string {
	values := m.field.Value()
	if len(values) == 0 {
		return ""
	}
	first := m.labels[values[0]]
	switch n := len(values) - 1; {
	case n == 0:
		return first
	case n == 1:
		return first + " (+1 other)"
	default:
		return fmt.Sprintf("%s (+%d others)", first, n)
	}
}
