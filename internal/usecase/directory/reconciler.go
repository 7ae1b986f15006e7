package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	domain "github.com/ItsmeMIGUEL/sample-crud-app/internal/domain/user"
)

// ErrBusy is returned when a mutating or loading operation is
// requested while another one is still in flight. The guard lives
// here, not only in disabled UI controls.
var ErrBusy = errors.New("another action is already in flight")

// Action tags the single in-flight operation, or ActionNone.
type Action int

const (
	ActionNone Action = iota
	ActionLoading
	ActionAdding
	ActionUpdating
	ActionDeleting
)

// String returns the action tag the UI and logs use.
func (a Action) String() string {
	switch a {
	case ActionLoading:
		return "loading"
	case ActionAdding:
		return "adding"
	case ActionUpdating:
		return "updating"
	case ActionDeleting:
		return "deleting"
	default:
		return "none"
	}
}

// Severity classifies a transient notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// AlertLifetime is how long a notification stays visible before it
// auto-dismisses.
const AlertLifetime = 4 * time.Second

// Alert is a transient notification. Seq distinguishes it from any
// earlier alert so a stale auto-dismiss timer cannot clear a newer
// message.
type Alert struct {
	Severity Severity
	Message  string
	Action   string // optional action label ("adding", "updating", ...)
	Seq      int
}

// Gateway is the remote directory access the reconciler orchestrates.
type Gateway interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	Update(ctx context.Context, id int64, u domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// Reconciler owns the authoritative in-memory user list and applies
// gateway-confirmed updates to it. Every operation splits into a Begin
// transition (claims the single in-flight slot, emits the immediate
// notification) and one Finish transition that applies the outcome and
// always, success or failure, releases the slot. The split exists so
// an event-loop caller can run the network call off the loop and feed
// the result back in; the synchronous Load/Add/Edit/Remove helpers
// compose the two for everyone else.
//
// The reconciler is a single-actor structure: all transitions must run
// on one goroutine (the UI event loop).
type Reconciler struct {
	gw  Gateway
	log *zap.Logger

	users     []domain.User
	action    Action
	loadError string
	alert     *Alert
	alertSeq  int

	now func() time.Time // injectable for id-generation tests
}

// New creates a reconciler over the given gateway.
func New(gw Gateway, log *zap.Logger) *Reconciler {
	return &Reconciler{gw: gw, log: log, now: time.Now}
}

// Users returns the authoritative list. Callers must treat it as
// read-only.
func (r *Reconciler) Users() []domain.User { return r.users }

// Action returns the in-flight operation tag.
func (r *Reconciler) Action() Action { return r.action }

// Busy reports whether an operation is in flight.
func (r *Reconciler) Busy() bool { return r.action != ActionNone }

// Gateway returns the remote directory gateway, for callers that run
// the network half of an operation themselves.
func (r *Reconciler) Gateway() Gateway { return r.gw }

// LoadError returns the persistent error banner text, or "".
func (r *Reconciler) LoadError() string { return r.loadError }

// DismissLoadError clears the persistent error banner.
func (r *Reconciler) DismissLoadError() { r.loadError = "" }

// Alert returns the current notification, or nil.
func (r *Reconciler) Alert() *Alert { return r.alert }

// AlertSeq returns the sequence number of the current notification.
func (r *Reconciler) AlertSeq() int { return r.alertSeq }

// DismissAlert clears the notification early, before its lifetime ends.
func (r *Reconciler) DismissAlert() { r.alert = nil }

// ExpireAlert clears the notification whose sequence number is seq.
// Expiry of an already-replaced alert is a no-op.
func (r *Reconciler) ExpireAlert(seq int) {
	if r.alert != nil && r.alert.Seq == seq {
		r.alert = nil
	}
}

func (r *Reconciler) showAlert(severity Severity, message, action string) {
	r.alertSeq++
	r.alert = &Alert{Severity: severity, Message: message, Action: action, Seq: r.alertSeq}
}

// begin claims the single in-flight slot.
func (r *Reconciler) begin(a Action) error {
	if r.action != ActionNone {
		r.log.Warn("rejected concurrent action",
			zap.Stringer("requested", a),
			zap.Stringer("in_flight", r.action))
		return ErrBusy
	}
	r.action = a
	return nil
}

// BeginLoad claims the slot for a full list refresh.
func (r *Reconciler) BeginLoad() error {
	return r.begin(ActionLoading)
}

// FinishLoad applies the outcome of a list refresh. On success the
// whole list is replaced; on failure the previous list stays untouched
// and the persistent error banner is set.
func (r *Reconciler) FinishLoad(users []domain.User, err error) {
	r.action = ActionNone
	if err != nil {
		r.log.Error("failed to load users", zap.Error(err))
		r.loadError = "Failed to fetch users. Please try again."
		r.showAlert(SeverityError, "Failed to load users", "")
		return
	}
	r.users = users
	r.loadError = ""
	r.log.Info("users loaded", zap.Int("count", len(users)))
	r.showAlert(SeveritySuccess, "Users loaded successfully", "")
}

// BeginAdd claims the slot for a create and emits the in-progress
// notification immediately.
func (r *Reconciler) BeginAdd() error {
	if err := r.begin(ActionAdding); err != nil {
		return err
	}
	r.showAlert(SeverityInfo, "Adding new user...", "adding")
	return nil
}

// FinishAdd applies the outcome of a create. The appended record keeps
// the server's fields but its id is overridden with a locally
// generated timestamp id, so locally added records never collide with
// server-assigned ids.
func (r *Reconciler) FinishAdd(draft domain.User, created *domain.User, err error) {
	r.action = ActionNone
	if err != nil {
		r.log.Error("failed to add user", zap.String("name", draft.Name), zap.Error(err))
		r.showAlert(SeverityError, "Failed to add user", "")
		return
	}
	u := *created
	u.ID = r.now().UnixMilli()
	r.users = append(r.users, u)
	r.loadError = ""
	r.log.Info("user added", zap.Int64("id", u.ID), zap.String("name", draft.Name))
	r.showAlert(SeveritySuccess, fmt.Sprintf("User %q added successfully", draft.Name), "")
}

// BeginUpdate claims the slot for an update and emits the in-progress
// notification.
func (r *Reconciler) BeginUpdate(name string) error {
	if err := r.begin(ActionUpdating); err != nil {
		return err
	}
	r.showAlert(SeverityInfo, fmt.Sprintf("Updating user %q...", name), "updating")
	return nil
}

// FinishUpdate applies the outcome of an update: on success the list
// entry with a matching id is replaced by the server's returned
// object, others stay unchanged.
func (r *Reconciler) FinishUpdate(name string, updated *domain.User, err error) {
	r.action = ActionNone
	if err != nil {
		r.log.Error("failed to update user", zap.String("name", name), zap.Error(err))
		r.showAlert(SeverityError, "Failed to update user", "")
		return
	}
	for i := range r.users {
		if r.users[i].ID == updated.ID {
			r.users[i] = *updated
		}
	}
	r.loadError = ""
	r.log.Info("user updated", zap.Int64("id", updated.ID), zap.String("name", name))
	r.showAlert(SeveritySuccess, fmt.Sprintf("User %q updated successfully", name), "")
}

// BeginDelete claims the slot for a delete and emits the in-progress
// notification.
func (r *Reconciler) BeginDelete(name string) error {
	if err := r.begin(ActionDeleting); err != nil {
		return err
	}
	r.showAlert(SeverityInfo, fmt.Sprintf("Deleting user %q...", name), "deleting")
	return nil
}

// FinishDelete applies the outcome of a delete: the matching entry is
// removed by id. Deleting an id that is not in the list removes
// nothing but still reports success when the gateway call succeeded.
func (r *Reconciler) FinishDelete(id int64, name string, err error) {
	r.action = ActionNone
	if err != nil {
		r.log.Error("failed to delete user", zap.Int64("id", id), zap.Error(err))
		r.showAlert(SeverityError, "Failed to delete user", "")
		return
	}
	kept := r.users[:0]
	for _, u := range r.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	r.users = kept
	r.loadError = ""
	r.log.Info("user deleted", zap.Int64("id", id), zap.String("name", name))
	r.showAlert(SeveritySuccess, fmt.Sprintf("User %q deleted successfully", name), "")
}

// Load refreshes the whole list synchronously.
func (r *Reconciler) Load(ctx context.Context) error {
	if err := r.BeginLoad(); err != nil {
		return err
	}
	users, err := r.gw.List(ctx)
	r.FinishLoad(users, err)
	return err
}

// Add creates a user from a validated draft synchronously.
func (r *Reconciler) Add(ctx context.Context, draft domain.User) error {
	if err := r.BeginAdd(); err != nil {
		return err
	}
	created, err := r.gw.Create(ctx, draft)
	r.FinishAdd(draft, created, err)
	return err
}

// Edit updates an existing user synchronously.
func (r *Reconciler) Edit(ctx context.Context, u domain.User) error {
	if err := r.BeginUpdate(u.Name); err != nil {
		return err
	}
	updated, err := r.gw.Update(ctx, u.ID, u)
	r.FinishUpdate(u.Name, updated, err)
	return err
}

// Remove deletes a user synchronously.
func (r *Reconciler) Remove(ctx context.Context, u domain.User) error {
	if err := r.BeginDelete(u.Name); err != nil {
		return err
	}
	err := r.gw.Delete(ctx, u.ID)
	r.FinishDelete(u.ID, u.Name, err)
	return err
}
