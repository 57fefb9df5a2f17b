package panel

// noRow is the Session's "no row editable" marker.
const noRow = -1

// Session is the per-row edit state machine: either no row is editable
// (viewing) or exactly one row's fields are mutable (editing). It never
// allows two rows in edit mode at once.
type Session struct {
	editing int
}

// NewSession returns a session in the viewing state.
func NewSession() Session {
	return Session{editing: noRow}
}

// IsViewing reports whether no row is in edit mode.
func (s Session) IsViewing() bool {
	return s.editing == noRow
}

// Editing returns the index of the row in edit mode. ok is false in the
// viewing state.
func (s Session) Editing() (index int, ok bool) {
	if s.editing == noRow {
		return 0, false
	}
	return s.editing, true
}

// IsEditing reports whether the given row is the one in edit mode.
func (s Session) IsEditing(index int) bool {
	return s.editing == index
}

// Start puts the given row into edit mode. Starting on a second row while
// another is already editing simply switches the edited index; field changes
// already applied to the first row are kept, not rolled back. Edits are
// applied to the row list as they happen, so edit mode only gates which
// row's inputs are rendered editable.
func (s *Session) Start(index int) {
	s.editing = index
}

// Save returns the session to the viewing state. The caller is responsible
// for triggering the persist of the saved row; the session only tracks which
// row is mutable.
func (s *Session) Save() {
	s.editing = noRow
}

// Adjust clamps the edited index after a row removal so the session never
// points at a row that no longer exists. Removing the edited row itself
// ends the edit session.
func (s *Session) Adjust(removedIndex int) {
	switch {
	case s.editing == noRow:
	case s.editing == removedIndex:
		s.editing = noRow
	case s.editing > removedIndex:
		s.editing--
	}
}
