package task

// DraftState is where the edit dialog is in its lifecycle.
type DraftState int

const (
	DraftClosed DraftState = iota
	DraftEditing
)

func (s DraftState) String() string {
	if s == DraftEditing {
		return "editing"
	}
	return "closed"
}

// Editor holds a working copy of one task. Changes stay in the copy until
// Save commits it to the store.
type Editor struct {
	state DraftState
	draft Task
}

func (e *Editor) State() DraftState {
	return e.state
}

func (e *Editor) Editing() bool {
	return e.state == DraftEditing
}

// Begin opens the editor on a copy of t, replacing any open draft.
func (e *Editor) Begin(t Task) {
	e.draft = t
	e.state = DraftEditing
}

// Draft returns the current working copy.
func (e *Editor) Draft() (Task, error) {
	if e.state != DraftEditing {
		return Task{}, ErrDraftClosed
	}
	return e.draft, nil
}

func (e *Editor) SetTitle(title string) error {
	if e.state != DraftEditing {
		return ErrDraftClosed
	}
	e.draft.Title = title
	return nil
}

func (e *Editor) SetDescription(description string) error {
	if e.state != DraftEditing {
		return ErrDraftClosed
	}
	e.draft.Description = description
	return nil
}

// Save writes the draft through Store.Update and closes the editor. The
// returned bool is false when the task was deleted while being edited.
func (e *Editor) Save(s *Store) (bool, error) {
	if e.state != DraftEditing {
		return false, ErrDraftClosed
	}
	applied := s.Update(e.draft)
	e.close()
	return applied, nil
}

// Cancel drops the draft without touching the store.
func (e *Editor) Cancel() {
	e.close()
}

func (e *Editor) close() {
	e.draft = Task{}
	e.state = DraftClosed
}
