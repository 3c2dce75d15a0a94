package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carosearch/internal/ui/input/types"
)

type stubContext struct {
	pane      types.Pane
	listing   bool
	vehicleID int
	dealerID  int
	next      bool
	prev      bool
	back      bool
	saved     int
}

func (c stubContext) Pane() types.Pane      { return c.pane }
func (c stubContext) OnListing() bool       { return c.listing }
func (c stubContext) CurrentVehicleID() int { return c.vehicleID }
func (c stubContext) CurrentDealerID() int  { return c.dealerID }
func (c stubContext) HasNextPage() bool     { return c.next }
func (c stubContext) HasPrevPage() bool     { return c.prev }
func (c stubContext) CanGoBack() bool       { return c.back }
func (c stubContext) SavedSearchCount() int { return c.saved }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEnterEditsFilterOrOpensVehicle(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, stubContext{listing: true, pane: types.PaneFilters})
	assert.Equal(t, []types.Action{types.EditFilterAction{}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, stubContext{listing: true, pane: types.PaneResults, vehicleID: 7})
	assert.Equal(t, []types.Action{types.OpenVehicleAction{ID: 7}}, actions)
}

func TestClearKeysOnlyOnListing(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("x"), stubContext{listing: true, pane: types.PaneFilters})
	assert.Equal(t, []types.Action{types.ClearFilterAction{}}, actions)

	actions, _ = h.HandleKey(runes("x"), stubContext{listing: true, pane: types.PaneResults})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("X"), stubContext{listing: false})
	assert.Empty(t, actions)
}

func TestPagingNeedsAnotherPage(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("n"), stubContext{next: true})
	assert.Equal(t, []types.Action{types.PageAction{Delta: 1}}, actions)

	actions, _ = h.HandleKey(runes("p"), stubContext{})
	assert.Empty(t, actions)
}

func TestDoubleGGoesHome(t *testing.T) {
	h := New()

	actions, _ := h.HandleKey(runes("g"), stubContext{})
	assert.Empty(t, actions)
	actions, _ = h.HandleKey(runes("g"), stubContext{})
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "home"}}, actions)
}

func TestSaveSearchTextMode(t *testing.T) {
	h := New()
	ctx := stubContext{listing: true}

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlS}, ctx)
	assert.Empty(t, actions)
	require.Equal(t, types.ModeSaveSearch, h.CurrentMode())
	require.NotNil(t, h.TextInput())

	actions, _ = h.HandleKey(runes("a"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "a"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.SubmitTextAction{Text: "a", Mode: types.ModeSaveSearch}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestEditModeStartsWithValueAndCancels(t *testing.T) {
	h := New()
	ctx := stubContext{listing: true}

	actions := []types.Action{types.ChangeModeAction{Mode: types.ModeEdit, Data: "2010-2015"}}
	h.modes[types.ModeNormal] = scripted{actions: actions}

	_, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	require.Equal(t, types.ModeEdit, h.CurrentMode())
	assert.Equal(t, "2010-2015", h.TextInput().Value())

	got, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.CancelTextAction{}}, got)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

// scripted returns fixed actions for any key
type scripted struct {
	actions []types.Action
}

func (s scripted) HandleKey(tea.KeyMsg, types.Context) ([]types.Action, bool) { return s.actions, true }
func (s scripted) Enter(types.Context) []types.Action                         { return nil }
func (s scripted) Exit(types.Context) []types.Action                          { return nil }
func (s scripted) Name() string                                               { return "scripted" }
