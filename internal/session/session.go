// Package session tracks the transient UI state that is never persisted:
// which entry is open for inline editing, whether search mode is on, and
// the three input drafts. Keeping add, edit and search drafts as separate
// fields means switching modes cannot clobber text the user is still
// working on.
package session

// State names the two edit states.
type State int

const (
	// Browsing means no entry is open for editing.
	Browsing State = iota
	// Editing means exactly one entry is open for inline editing.
	Editing
)

// Session is the edit/search state machine. Zero value is Browsing with
// search off and empty drafts.
type Session struct {
	state    State
	activeID string

	searching bool

	AddDraft    string
	EditDraft   string
	SearchQuery string
}

// State returns the current edit state.
func (s *Session) State() State { return s.state }

// Active returns the id of the entry open for editing, if any.
func (s *Session) Active() (string, bool) {
	return s.activeID, s.state == Editing
}

// StartEdit opens the entry for inline editing, preloading the edit draft
// with its current description. Starting an edit while one is already
// active silently switches target; the last request wins.
func (s *Session) StartEdit(id, current string) {
	s.state = Editing
	s.activeID = id
	s.EditDraft = current
}

// SubmitEdit closes the edit session and returns the target id and draft.
// ok is false when nothing was being edited.
func (s *Session) SubmitEdit() (id, draft string, ok bool) {
	if s.state != Editing {
		return "", "", false
	}
	id, draft = s.activeID, s.EditDraft
	s.CancelEdit()
	return id, draft, true
}

// CancelEdit discards the draft and returns to Browsing.
func (s *Session) CancelEdit() {
	s.state = Browsing
	s.activeID = ""
	s.EditDraft = ""
}

// NoteRemoved clears the edit session iff the removed entry was the one
// being edited.
func (s *Session) NoteRemoved(id string) {
	if s.state == Editing && s.activeID == id {
		s.CancelEdit()
	}
}

// Searching reports whether search mode is on.
func (s *Session) Searching() bool { return s.searching }

// ToggleSearch flips search mode and clears the query both on entering and
// leaving. An active edit session is left alone.
func (s *Session) ToggleSearch() bool {
	s.searching = !s.searching
	s.SearchQuery = ""
	return s.searching
}

// ExitSearch leaves search mode if it is on.
func (s *Session) ExitSearch() {
	if s.searching {
		s.searching = false
		s.SearchQuery = ""
	}
}
