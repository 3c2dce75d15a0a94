package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"carosearch/internal/ui/input/types"
)

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyCtrlS:
		if ctx.OnListing() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSaveSearch}}, true
		}
		return nil, true

	case tea.KeyTab, tea.KeyShiftTab:
		if ctx.OnListing() {
			return []types.Action{types.SwitchPaneAction{}}, true
		}
		return nil, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyBackspace, tea.KeyEsc:
		if ctx.CanGoBack() {
			return []types.Action{types.BackAction{}}, true
		}
		return nil, true

	case tea.KeyEnter:
		// Enter edits the filter under the cursor, or opens the vehicle
		if ctx.OnListing() && ctx.Pane() == types.PaneFilters {
			return []types.Action{types.EditFilterAction{}}, true
		}
		if id := ctx.CurrentVehicleID(); id > 0 {
			return []types.Action{types.OpenVehicleAction{ID: id}}, true
		}
		return nil, false
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "x":
		if ctx.OnListing() && ctx.Pane() == types.PaneFilters {
			return []types.Action{types.ClearFilterAction{}}, true
		}
		return nil, true

	case "X":
		if ctx.OnListing() {
			return []types.Action{types.ClearAllFiltersAction{}}, true
		}
		return nil, true

	case "n":
		if ctx.HasNextPage() {
			return []types.Action{types.PageAction{Delta: 1}}, true
		}
		return nil, true

	case "p":
		if ctx.HasPrevPage() {
			return []types.Action{types.PageAction{Delta: -1}}, true
		}
		return nil, true

	case "s":
		return []types.Action{types.CycleSortAction{}}, true

	case "d":
		if id := ctx.CurrentDealerID(); id > 0 {
			return []types.Action{types.OpenDealerAction{ID: id}}, true
		}
		return nil, true

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case "'":
		if ctx.OnListing() && ctx.SavedSearchCount() > 0 {
			return []types.Action{types.LoadSavedSearchAction{}}, true
		}
		return nil, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top (within timeout)
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		// First g, wait for next key
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	default:
		// Any other key cancels the 'g' prefix
		m.lastKeyWasG = false
	}

	return nil, false
}
