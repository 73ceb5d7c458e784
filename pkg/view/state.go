package view

import "gestor/pkg/domain"

// Mode is the navigation state within a module.
type Mode string

const (
	// ModeListing shows the module's record table.
	ModeListing Mode = "listing"
	// ModeCreating shows the empty record form.
	ModeCreating Mode = "creating"
	// ModeEditing shows the record form pre-filled for one record.
	ModeEditing Mode = "editing"
)

// State tracks which module is active and whether a record form is open.
// Transitions are Listing → Creating → Listing and
// Listing → Editing(id) → Listing; switching modules always lands back on
// the listing with form state cleared.
type State struct {
	ActiveModule domain.Module
	Mode         Mode
	EditingID    string
}

// NewState starts on the tasks listing, mirroring the sidebar default.
func NewState() *State {
	return &State{ActiveModule: domain.ModuleTasks, Mode: ModeListing}
}

// SwitchModule activates m and resets any open form.
func (s *State) SwitchModule(m domain.Module) {
	s.ActiveModule = m
	s.reset()
}

// StartCreate opens the empty form for the active module.
func (s *State) StartCreate() {
	s.Mode = ModeCreating
	s.EditingID = ""
}

// StartEdit opens the form pre-filled with record id.
func (s *State) StartEdit(id string) {
	s.Mode = ModeEditing
	s.EditingID = id
}

// Finish returns to the listing after a successful save.
func (s *State) Finish() { s.reset() }

// Cancel abandons the open form without persisting anything.
func (s *State) Cancel() { s.reset() }

func (s *State) reset() {
	s.Mode = ModeListing
	s.EditingID = ""
}

// Editing reports whether the open form targets an existing record.
func (s *State) Editing() bool { return s.Mode == ModeEditing }
