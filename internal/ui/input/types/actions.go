package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

type SwitchPaneAction struct{}

func (a SwitchPaneAction) Type() string { return "switch_pane" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Filter actions
type EditFilterAction struct{}

func (a EditFilterAction) Type() string { return "edit_filter" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

type ClearAllFiltersAction struct{}

func (a ClearAllFiltersAction) Type() string { return "clear_all_filters" }

type LoadSavedSearchAction struct{}

func (a LoadSavedSearchAction) Type() string { return "load_saved_search" }

// Result actions
type OpenVehicleAction struct {
	ID int
}

func (a OpenVehicleAction) Type() string { return "open_vehicle" }

type OpenDealerAction struct {
	ID int
}

func (a OpenDealerAction) Type() string { return "open_dealer" }

type PageAction struct {
	Delta int // +1 next page, -1 previous page
}

func (a PageAction) Type() string { return "page" }

type CycleSortAction struct{}

func (a CycleSortAction) Type() string { return "cycle_sort" }

type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
