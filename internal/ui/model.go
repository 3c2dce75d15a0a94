package ui

import (
	"errors"
	"fmt"
	"log"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"carosearch/internal/codec"
	"carosearch/internal/config"
	"carosearch/internal/domain"
	"carosearch/internal/eventbus"
	"carosearch/internal/filters"
	"carosearch/internal/logic"
	"carosearch/internal/router"
	"carosearch/internal/ui/input"
	inputtypes "carosearch/internal/ui/input/types"
	"carosearch/internal/ui/services/navigation"
	"carosearch/internal/ui/services/sorting"
	"carosearch/internal/ui/views"
	"carosearch/internal/urlsync"
)

const statusTimeout = 4 * time.Second

// Options wire a Model to the rest of the application
type Options struct {
	Bus     eventbus.EventBus
	Config  *config.Config
	Store   logic.FilterStore
	History *router.History
	// StartPath opens a vehicle or dealer page on top of the listing
	StartPath string
	// Scheduler arms the location debounce; nil posts timers into the program
	Scheduler urlsync.Scheduler
	// Pager shows help and vehicle details; nil uses ov
	Pager Pager
}

// Model represents the UI state
type Model struct {
	bus        eventbus.EventBus
	config     *config.Config
	store      logic.FilterStore
	history    *router.History
	controller *urlsync.Controller
	startPath  string

	width  int
	height int
	help   help.Model
	keys   keyMap

	inputHandler *input.Handler
	renderer     *views.Renderer
	pane         inputtypes.Pane
	filterNav    *navigation.Service
	resultNav    *navigation.Service
	dealerNav    *navigation.Service
	sorter       *sorting.Service

	route    router.Route
	listing  domain.Listing
	vehicles []domain.Vehicle // listing vehicles in display order
	page     int
	seq      int
	loading  bool
	ticking  bool

	dealer         *domain.Dealer
	dealerListing  domain.Listing
	dealerVehicles []domain.Vehicle
	dealerPage     int
	pendingVehicle int

	facets     domain.FacetsLoadedEvent
	facetsMake string

	editField  filters.Field
	savedIndex int

	statusMessage string
	statusIsError bool
	statusGen     int

	pager   Pager
	program *tea.Program
}

// NewModel creates a new UI model. The URL sync controller is created here
// so its debounce timers can be routed through the program.
func NewModel(opts Options) *Model {
	m := &Model{
		bus:          opts.Bus,
		config:       opts.Config,
		store:        opts.Store,
		history:      opts.History,
		startPath:    opts.StartPath,
		help:         help.New(),
		keys:         newKeyMap(),
		inputHandler: input.New(),
		renderer:     views.NewRenderer(),
		pane:         inputtypes.PaneFilters,
		filterNav:    navigation.NewService(views.ReservedRows),
		resultNav:    navigation.NewService(views.ReservedRows),
		dealerNav:    navigation.NewService(views.ReservedRows + 1),
		sorter:       sorting.NewService(),
		route:        router.Route{Page: router.PageListing},
		page:         1,
		dealerPage:   1,
		pager:        opts.Pager,
	}
	if m.config == nil {
		m.config = config.DefaultConfig()
	}
	if m.config.SavedSearches == nil {
		m.config.SavedSearches = make(map[string]string)
	}
	m.filterNav.SetItemCount(len(filters.Fields()))

	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = urlsync.DispatchScheduler{Dispatch: m.dispatch}
	}
	m.controller = urlsync.New(m.store, m.history, urlsync.Options{
		Delay:     m.config.Debounce(),
		Scheduler: scheduler,
		OnSettled: m.onSettled,
	})
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.pager == nil {
		m.pager = NewPagerOps(p)
	}
}

// Location is the current location as a relative URL
func (m *Model) Location() string {
	return m.history.Current().String()
}

// Close writes any pending location change and stops following the store
func (m *Model) Close() {
	m.controller.Flush()
	m.controller.Close()
}

// dispatch runs fn on the update goroutine
func (m *Model) dispatch(fn func()) {
	if m.program == nil {
		log.Printf("ui: dropped timer callback, program not set")
		return
	}
	m.program.Send(RunMsg{Fn: fn})
}

// Init seeds the filters from the location and starts the first search
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	if err := m.controller.Init(); err != nil {
		var decodeErrs codec.DecodeErrors
		if errors.As(err, &decodeErrs) {
			cmds = append(cmds, m.setStatus(
				fmt.Sprintf("Ignored malformed filters: %s", strings.Join(decodeErrs.Keys(), ", ")), true))
		} else {
			cmds = append(cmds, m.setStatus(err.Error(), true))
		}
	}

	m.requestFacets(m.store.GetFilters().Make)
	m.startSearch(1)
	cmds = append(cmds, m.tick())

	if m.startPath != "" {
		if route := router.Match(m.startPath); route.Page == router.PageVehicle || route.Page == router.PageDealer {
			cmds = append(cmds, m.openRoute(m.startPath, route))
		}
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.filterNav.SetViewportHeight(msg.Height)
		m.resultNav.SetViewportHeight(msg.Height)
		m.dealerNav.SetViewportHeight(msg.Height)
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m)
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case RunMsg:
		msg.Fn()
		return m, m.tick()

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tickMsg:
		m.ticking = false
		return m, m.tick()

	case pagerMsg:
		var cmd tea.Cmd
		if msg.err != nil {
			log.Printf("ui: %s pager failed: %v", msg.what, msg.err)
			cmd = m.setStatus(fmt.Sprintf("Failed to open %s: %v", msg.what, msg.err), true)
		}
		if msg.what == "vehicle" {
			m.leavePage()
		}
		return m, cmd

	case clearStatusMsg:
		if msg.gen == m.statusGen {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil
	}

	return m, m.inputHandler.Update(msg)
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	state := m.store.GetFilters()
	onListing := m.OnListing()
	m.keys.setPage(onListing)
	pending, _ := m.controller.Pending()

	vs := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Location:       m.Location(),
		ActiveCount:    state.ActiveCount(),
		OnDealerPage:   m.route.Page == router.PageDealer,
		Dealer:         m.dealer,
		Filters:        filterRows(state),
		FilterCursor:   m.filterNav.GetCursor(),
		FilterOffset:   m.filterNav.GetViewportOffset(),
		FiltersFocused: onListing && m.pane == inputtypes.PaneFilters,
		Vehicles:       m.vehicles,
		ResultCursor:   m.resultNav.GetCursor(),
		ResultOffset:   m.resultNav.GetViewportOffset(),
		ViewportHeight: m.resultNav.GetViewportHeight(),
		Pagination:     m.listing.Pagination,
		SortMode:       m.sorter.GetModeString(),
		Loading:        m.loading,
		Pending:        pending,
		StatusMessage:  m.statusMessage,
		StatusIsError:  m.statusIsError,
		HelpModel:      m.help,
		HelpKeys:       m.keys,
	}
	if vs.OnDealerPage {
		vs.Vehicles = m.dealerVehicles
		vs.ResultCursor = m.dealerNav.GetCursor()
		vs.ResultOffset = m.dealerNav.GetViewportOffset()
		vs.ViewportHeight = m.dealerNav.GetViewportHeight()
		vs.Pagination = m.dealerListing.Pagination
	}
	for _, err := range filters.Validate(state) {
		vs.Warnings = append(vs.Warnings, err.Error())
	}

	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.TextInput = ti.View()
		switch m.inputHandler.CurrentMode() {
		case inputtypes.ModeEdit:
			vs.InputPrompt = m.editField.Label() + ":"
		case inputtypes.ModeSaveSearch:
			vs.InputPrompt = "Save search as:"
		}
	}

	return m.renderer.Render(vs)
}

func filterRows(state filters.State) []views.FilterRow {
	fields := filters.Fields()
	rows := make([]views.FilterRow, len(fields))
	for i, f := range fields {
		v := state.Get(f)
		rows[i] = views.FilterRow{Label: f.Label(), Active: state.IsActive(f)}
		if rows[i].Active {
			rows[i].Value = filters.FormatValue(v)
		}
		switch r := v.(type) {
		case filters.IntRange:
			rows[i].Warning = !r.Ordered()
		case filters.FloatRange:
			rows[i].Warning = !r.Ordered()
		}
	}
	return rows
}

// processAction executes one input action
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.activeNav().Navigate(navigation.Direction(a.Direction))

	case inputtypes.SwitchPaneAction:
		if m.pane == inputtypes.PaneFilters {
			m.pane = inputtypes.PaneResults
		} else {
			m.pane = inputtypes.PaneFilters
		}

	case inputtypes.EditFilterAction:
		m.editField = filters.Fields()[m.filterNav.GetCursor()]
		m.inputHandler.SetSuggestions(m.suggestionsFor(m.editField))
		state := m.store.GetFilters()
		text := ""
		if state.IsActive(m.editField) {
			text = filters.InputText(m.editField, state.Get(m.editField))
		}
		return m.inputHandler.ChangeMode(inputtypes.ModeEdit, text, m)

	case inputtypes.SubmitTextAction:
		return m.submitText(a)

	case inputtypes.ClearFilterAction:
		f := filters.Fields()[m.filterNav.GetCursor()]
		if err := m.store.ClearFilter(f); err != nil {
			log.Printf("ui: %v", err)
			return m.setStatus(err.Error(), true)
		}

	case inputtypes.ClearAllFiltersAction:
		m.store.ClearAllFilters()

	case inputtypes.LoadSavedSearchAction:
		return m.loadNextSavedSearch()

	case inputtypes.OpenVehicleAction:
		return m.openRoute(router.VehiclePath(a.ID), router.Route{Page: router.PageVehicle, ID: a.ID})

	case inputtypes.OpenDealerAction:
		return m.openRoute(router.DealerPath(a.ID), router.Route{Page: router.PageDealer, ID: a.ID})

	case inputtypes.BackAction:
		m.leavePage()

	case inputtypes.PageAction:
		if m.route.Page == router.PageDealer {
			m.dealerPage += a.Delta
			m.requestDealer(m.route.ID)
			return m.tick()
		}
		m.startSearch(m.page + a.Delta)
		return m.tick()

	case inputtypes.CycleSortAction:
		m.sorter.NextMode()
		m.resort()
		m.resultNav.Reset()
		m.dealerNav.Reset()

	case inputtypes.RefreshAction:
		if m.route.Page == router.PageDealer {
			m.requestDealer(m.route.ID)
			return m.tick()
		}
		m.startSearch(m.page)
		return m.tick()

	case inputtypes.ToggleHelpAction:
		return m.showPager("help", NewHelpRenderer().RenderHelpContent())

	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit
	}
	return nil
}

func (m *Model) activeNav() *navigation.Service {
	switch {
	case m.route.Page == router.PageDealer:
		return m.dealerNav
	case m.pane == inputtypes.PaneFilters:
		return m.filterNav
	default:
		return m.resultNav
	}
}

func (m *Model) submitText(a inputtypes.SubmitTextAction) tea.Cmd {
	switch a.Mode {
	case inputtypes.ModeEdit:
		v, err := filters.ParseInput(m.editField, a.Text)
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		if err := m.store.SetFilter(m.editField, v); err != nil {
			log.Printf("ui: %v", err)
			return m.setStatus(err.Error(), true)
		}

	case inputtypes.ModeSaveSearch:
		name := strings.TrimSpace(a.Text)
		if name == "" {
			return m.setStatus("Search name cannot be empty", true)
		}
		m.config.SavedSearches[name] = codec.EncodeQuery(m.store.GetFilters())
		m.bus.Publish(eventbus.ConfigChangedEvent{SavedSearches: maps.Clone(m.config.SavedSearches)})
		return m.setStatus(fmt.Sprintf("Saved search %q", name), false)
	}
	return nil
}

// loadNextSavedSearch replaces every filter with the next saved search in
// name order
func (m *Model) loadNextSavedSearch() tea.Cmd {
	names := slices.Sorted(maps.Keys(m.config.SavedSearches))
	if len(names) == 0 {
		return nil
	}
	name := names[m.savedIndex%len(names)]
	m.savedIndex++

	decoded, decodeErr := codec.ParseQuery(m.config.SavedSearches[name])
	patch := filters.Patch{}
	for _, f := range filters.Fields() {
		patch[f] = filters.DefaultValue(f)
	}
	maps.Copy(patch, decoded)

	if err := m.store.ApplyPatch(patch); err != nil {
		log.Printf("ui: %v", err)
		return m.setStatus(err.Error(), true)
	}
	if decodeErr != nil {
		return m.setStatus(fmt.Sprintf("Loaded %q, ignoring: %v", name, decodeErr), true)
	}
	return m.setStatus(fmt.Sprintf("Loaded saved search %q", name), false)
}

// openRoute pushes a vehicle or dealer page on top of the listing
func (m *Model) openRoute(path string, route router.Route) tea.Cmd {
	// the listing query must be written before the location moves away
	m.controller.Flush()
	if err := m.history.Push(path); err != nil {
		log.Printf("ui: %v", err)
		return m.setStatus(err.Error(), true)
	}
	m.route = route

	switch route.Page {
	case router.PageVehicle:
		m.pendingVehicle = route.ID
		m.bus.Publish(eventbus.VehicleRequestedEvent{ID: route.ID})
		return m.setStatus("Loading vehicle...", false)
	case router.PageDealer:
		m.dealer = nil
		m.dealerListing = domain.Listing{}
		m.dealerVehicles = nil
		m.dealerPage = 1
		m.dealerNav.Reset()
		m.requestDealer(route.ID)
		return m.tick()
	}
	return nil
}

// leavePage goes back one history entry, falling back to the listing
func (m *Model) leavePage() {
	if !m.history.Back() {
		m.pushListing()
	}
	m.route = router.Match(m.history.Current().Path)
	if m.route.Page != router.PageListing && m.route.Page != router.PageDealer {
		m.pushListing()
		m.route = router.Route{Page: router.PageListing}
	}
	m.pendingVehicle = 0
	m.loading = false
}

func (m *Model) pushListing() {
	if err := m.history.Push(router.ListingPath); err != nil {
		log.Printf("ui: %v", err)
	}
}

func (m *Model) requestDealer(id int) {
	m.loading = true
	m.bus.Publish(eventbus.DealerRequestedEvent{ID: id, Page: m.dealerPage, Limit: m.config.UISettings.PageSize})
}

func (m *Model) requestFacets(vehicleMake string) {
	m.facetsMake = vehicleMake
	m.bus.Publish(eventbus.FacetsRequestedEvent{Make: vehicleMake})
}

// startSearch publishes a search for page of the current filters. Results
// of earlier searches are dropped when they arrive.
func (m *Model) startSearch(page int) {
	if page < 1 {
		page = 1
	}
	m.seq++
	m.page = page
	m.loading = true
	m.bus.Publish(eventbus.SearchRequestedEvent{
		Seq:    m.seq,
		Params: codec.ToSearchParams(m.store.GetFilters()),
		Page:   page,
		Limit:  m.config.UISettings.PageSize,
	})
}

// onSettled runs once the location caught up with the filters
func (m *Model) onSettled(state filters.State) {
	if state.Make != m.facetsMake {
		m.requestFacets(state.Make)
	}
	m.startSearch(1)
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SearchCompletedEvent:
		if e.Seq != m.seq {
			return nil
		}
		m.loading = false
		m.listing = e.Listing
		m.resort()
		m.resultNav.Reset()
		if e.Cached {
			log.Printf("ui: search %d served from cache", e.Seq)
		}

	case eventbus.SearchFailedEvent:
		if e.Seq != m.seq {
			return nil
		}
		m.loading = false
		return m.setStatus(fmt.Sprintf("Search failed: %v", e.Err), true)

	case eventbus.VehicleLoadedEvent:
		if e.ID != m.pendingVehicle {
			return nil
		}
		m.pendingVehicle = 0
		if e.Err != nil {
			m.leavePage()
			return m.setStatus(fmt.Sprintf("Failed to load vehicle %d: %v", e.ID, e.Err), true)
		}
		m.statusMessage = ""
		return m.showPager("vehicle", RenderVehicleDetail(e.Vehicle))

	case eventbus.DealerLoadedEvent:
		if m.route.Page != router.PageDealer || e.ID != m.route.ID {
			return nil
		}
		m.loading = false
		if e.Err != nil {
			return m.setStatus(fmt.Sprintf("Failed to load dealer %d: %v", e.ID, e.Err), true)
		}
		m.dealer = e.Dealer
		m.dealerListing = e.Listing
		m.resort()
		m.dealerNav.Reset()

	case eventbus.FacetsLoadedEvent:
		if e.Err != nil {
			log.Printf("ui: facets: %v", e.Err)
		}
		m.facets = e

	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	}
	return nil
}

// resort applies the sort mode to the listing and dealer vehicles
func (m *Model) resort() {
	m.vehicles = m.sorter.SortVehicles(m.listing.Vehicles)
	m.resultNav.SetItemCount(len(m.vehicles))
	m.dealerVehicles = m.sorter.SortVehicles(m.dealerListing.Vehicles)
	m.dealerNav.SetItemCount(len(m.dealerVehicles))
}

func (m *Model) suggestionsFor(f filters.Field) []string {
	var facets []domain.Facet
	switch f {
	case filters.FieldMake:
		facets = m.facets.Makes
	case filters.FieldModel:
		facets = m.facets.Models
	case filters.FieldLocation:
		facets = m.facets.Locations
	}
	if len(facets) == 0 {
		return nil
	}
	out := make([]string, len(facets))
	for i, facet := range facets {
		out[i] = facet.Name
	}
	return out
}

func (m *Model) showPager(what, content string) tea.Cmd {
	pager := m.pager
	return func() tea.Msg {
		if pager == nil {
			return pagerMsg{what: what, err: errors.New("pager not available")}
		}
		return pagerMsg{what: what, err: pager.Show(content)}
	}
}

func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusGen++
	m.statusMessage = message
	m.statusIsError = isError
	gen := m.statusGen
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{gen: gen} })
}

// tick keeps the spinner moving while something loads
func (m *Model) tick() tea.Cmd {
	if !m.loading || m.ticking {
		return nil
	}
	m.ticking = true
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Pane implements input.Context
func (m *Model) Pane() inputtypes.Pane {
	return m.pane
}

// OnListing implements input.Context
func (m *Model) OnListing() bool {
	return m.route.Page == router.PageListing
}

// CurrentVehicleID implements input.Context
func (m *Model) CurrentVehicleID() int {
	if v := m.currentVehicle(); v != nil {
		return v.ID
	}
	return 0
}

// CurrentDealerID implements input.Context
func (m *Model) CurrentDealerID() int {
	if m.route.Page == router.PageDealer {
		return 0
	}
	if v := m.currentVehicle(); v != nil {
		if d := v.Dealer(); d != nil {
			return d.ID
		}
	}
	return 0
}

func (m *Model) currentVehicle() *domain.Vehicle {
	switch {
	case m.route.Page == router.PageDealer:
		if i := m.dealerNav.GetCursor(); i < len(m.dealerVehicles) {
			return &m.dealerVehicles[i]
		}
	case m.OnListing() && m.pane == inputtypes.PaneResults:
		if i := m.resultNav.GetCursor(); i < len(m.vehicles) {
			return &m.vehicles[i]
		}
	}
	return nil
}

// HasNextPage implements input.Context
func (m *Model) HasNextPage() bool {
	page, listing := m.page, m.listing
	if m.route.Page == router.PageDealer {
		page, listing = m.dealerPage, m.dealerListing
	}
	if p := listing.Pagination; p != nil {
		return page < p.Pages
	}
	// a bare array gives no total, so a full page may have a successor
	return len(listing.Vehicles) > 0 && len(listing.Vehicles) >= m.config.UISettings.PageSize
}

// HasPrevPage implements input.Context
func (m *Model) HasPrevPage() bool {
	if m.route.Page == router.PageDealer {
		return m.dealerPage > 1
	}
	return m.page > 1
}

// CanGoBack implements input.Context
func (m *Model) CanGoBack() bool {
	return !m.OnListing()
}

// SavedSearchCount implements input.Context
func (m *Model) SavedSearchCount() int {
	return len(m.config.SavedSearches)
}
