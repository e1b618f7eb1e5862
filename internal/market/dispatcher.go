package market

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aun009/resourcify/internal/domain"
)

// Backend is the slice of the API the marketplace needs. *api.Client
// satisfies it.
type Backend interface {
	Requests(ctx context.Context) ([]domain.Request, error)
	MyRequests(ctx context.Context) ([]domain.Request, error)
	RequestAction(ctx context.Context, id int64, action domain.Action) (*domain.Request, error)
	DeleteRequest(ctx context.Context, id int64) error
	DeleteAllMyRequests(ctx context.Context) error
}

// Confirmer answers the blocking yes/no prompts that gate destructive or
// irreversible-looking actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// ErrNeedsConfirmation is returned when a complete is attempted without
// going through the confirmation flow.
var ErrNeedsConfirmation = errors.New("market: complete requires the confirmation flow")

const (
	completePrompt = "Has the request been successfully fulfilled? Confirm to complete."
	reopenPrompt   = "Do you want to re-open the request to find another helper?"
	deletePrompt   = "Are you sure you want to delete this request?"
	clearPrompt    = "Are you sure you want to clear ALL your activity? This will delete all your requests."
)

// Dispatcher submits lifecycle transition intents. It never applies a
// transition locally: the backend decides, and success triggers a full
// refetch of both lists.
type Dispatcher struct {
	backend Backend
	store   *Store
	authed  func() bool
	log     *zap.Logger
}

func NewDispatcher(backend Backend, store *Store, authed func() bool, log *zap.Logger) *Dispatcher {
	return &Dispatcher{backend: backend, store: store, authed: authed, log: log}
}

// Do submits offer, accept, reject or reopen. Complete is refused here; it
// must go through Complete so the confirmation gate cannot be skipped.
func (d *Dispatcher) Do(ctx context.Context, id int64, action domain.Action) error {
	if action == domain.ActionComplete {
		return ErrNeedsConfirmation
	}
	return d.dispatch(ctx, id, action)
}

// Complete runs the guarded completion flow: confirm completion, or on
// decline offer to reopen instead, or do nothing.
func (d *Dispatcher) Complete(ctx context.Context, id int64, confirm Confirmer) error {
	if confirm.Confirm(completePrompt) {
		return d.dispatch(ctx, id, domain.ActionComplete)
	}
	if confirm.Confirm(reopenPrompt) {
		return d.dispatch(ctx, id, domain.ActionReopen)
	}
	return nil
}

// Delete removes a request after one confirmation. Removal is applied
// locally before the server call; a later refresh restores the record if
// the server refused.
func (d *Dispatcher) Delete(ctx context.Context, id int64, confirm Confirmer) error {
	if !confirm.Confirm(deletePrompt) {
		return nil
	}
	d.store.RemoveLocally(id)
	if err := d.backend.DeleteRequest(ctx, id); err != nil {
		return err
	}
	return nil
}

// ClearActivity deletes the user's entire activity after one confirmation,
// with the same optimistic-removal behavior as Delete.
func (d *Dispatcher) ClearActivity(ctx context.Context, confirm Confirmer) error {
	if !confirm.Confirm(clearPrompt) {
		return nil
	}
	d.store.ClearMineLocally()
	if err := d.backend.DeleteAllMyRequests(ctx); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, id int64, action domain.Action) error {
	if _, err := d.backend.RequestAction(ctx, id, action); err != nil {
		return err
	}
	d.RefreshBoth(ctx)
	return nil
}

// RefreshBoth refetches the public list and, when authenticated, the "my"
// list. Read failures keep the stale snapshot and are only logged.
func (d *Dispatcher) RefreshBoth(ctx context.Context) {
	if public, err := d.backend.Requests(ctx); err != nil {
		d.log.Warn("public list refresh failed, keeping stale data", zap.Error(err))
	} else {
		d.store.SetPublic(public)
	}

	if !d.authed() {
		return
	}
	if mine, err := d.backend.MyRequests(ctx); err != nil {
		d.log.Warn("my-requests refresh failed, keeping stale data", zap.Error(err))
	} else {
		d.store.SetMine(mine)
	}
}
