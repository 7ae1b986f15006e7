package form

import (
	domain "github.com/ItsmeMIGUEL/sample-crud-app/internal/domain/user"
)

// Phase is the sub-state of an open form session.
type Phase int

const (
	// PhaseEditing means the form accepts field edits.
	PhaseEditing Phase = iota
	// PhaseConfirmingDiscard means an attempted close was intercepted
	// because the session is dirty. The only exits are KeepEditing
	// (back to editing, draft intact) and Discard (close, draft gone).
	PhaseConfirmingDiscard
)

// Session tracks one open form: the draft being edited, which fields
// have been touched, their validation errors, and whether the draft
// has drifted from the snapshot taken when the form opened. The
// session owns the draft exclusively; nothing it holds aliases the
// authoritative user list.
type Session struct {
	original *domain.User // nil when creating a new user
	snapshot string
	draft    Draft
	touched  map[string]bool
	errors   map[string]string
	dirty    bool
	phase    Phase
}

// NewSession opens a form session. With an existing user the draft
// starts as a copy of that user's editable fields; with nil it starts
// from the all-empty template.
func NewSession(existing *domain.User) *Session {
	s := &Session{
		touched: make(map[string]bool),
		errors:  make(map[string]string),
	}
	if existing != nil {
		clone := *existing
		s.original = &clone
		s.draft = draftFromUser(existing)
	}
	s.snapshot = serialize(s.draft)
	return s
}

// IsEdit reports whether the session edits an existing user rather
// than creating a new one.
func (s *Session) IsEdit() bool { return s.original != nil }

// Original returns the user being edited, or nil for a new user.
func (s *Session) Original() *domain.User { return s.original }

// Draft returns the current draft values.
func (s *Session) Draft() Draft { return s.draft }

// Field returns the current value of the named field.
func (s *Session) Field(name string) string { return s.draft.get(name) }

// Phase returns the current sub-state.
func (s *Session) Phase() Phase { return s.phase }

// Dirty reports whether the draft differs from the opening snapshot.
// Editing a field back to its original value clears the flag.
func (s *Session) Dirty() bool { return s.dirty }

// HasUnsavedWork is the hook the shell uses to decide whether quitting
// the program should warn first.
func (s *Session) HasUnsavedWork() bool { return s.dirty }

// FieldError returns the inline error for a field, or "" when the
// field is valid or has not been validated yet.
func (s *Session) FieldError(name string) string { return s.errors[name] }

// Errors returns the current field error map.
func (s *Session) Errors() map[string]string { return s.errors }

// SetField updates a draft field and recomputes the dirty flag by
// comparing the serialized draft against the snapshot. The field is
// revalidated only if it has been touched before; untouched fields
// stay error-free mid-edit to avoid premature error flashing.
func (s *Session) SetField(name, value string) {
	if s.phase != PhaseEditing {
		return
	}
	s.draft.set(name, value)
	s.dirty = serialize(s.draft) != s.snapshot
	if s.touched[name] {
		s.applyError(name, ValidateField(name, value))
	}
}

// Blur marks a field as touched and validates it.
func (s *Session) Blur(name string) {
	s.touched[name] = true
	s.applyError(name, ValidateField(name, s.draft.get(name)))
}

func (s *Session) applyError(name, message string) {
	if message == "" {
		delete(s.errors, name)
		return
	}
	s.errors[name] = message
}

// RequestClose handles a close attempt (explicit cancel, escape key,
// or a quit attempt from the shell). It returns true when the session
// may close immediately. When the session is dirty it returns false
// and enters the discard-confirmation sub-state instead.
func (s *Session) RequestClose() bool {
	if s.dirty {
		s.phase = PhaseConfirmingDiscard
		return false
	}
	return true
}

// KeepEditing leaves the discard confirmation and returns to editing
// with the draft unmodified.
func (s *Session) KeepEditing() {
	s.phase = PhaseEditing
}

// Discard abandons the draft. The caller closes the session afterward;
// the draft content is gone either way.
func (s *Session) Discard() {
	s.draft = Draft{}
	s.dirty = false
	s.phase = PhaseEditing
}

// Submit marks every validated field as touched and runs full-form
// validation. If any rule fails the session stays open with the errors
// recorded and ok is false. On success it returns the candidate
// entity, carrying the original id when editing an existing user; the
// caller confirms persistence and closes the session.
func (s *Session) Submit() (u domain.User, ok bool) {
	for name := range fieldRules {
		s.touched[name] = true
	}

	valid := true
	for name, message := range ValidateForm(s.draft) {
		s.applyError(name, message)
		if message != "" {
			valid = false
		}
	}
	if !valid {
		return domain.User{}, false
	}

	u = s.draft.toUser()
	if s.original != nil {
		u.ID = s.original.ID
	}
	return u, true
}
