package listing

import (
	"context"
	"errors"
	"sync"
)

// ErrDialogBusy is returned for a transition the dialog is not ready for.
var ErrDialogBusy = errors.New("listing: delete dialog busy")

// DialogState is the step a DeleteDialog is at.
type DialogState int

const (
	Idle DialogState = iota
	Confirming
	Submitting
)

func (s DialogState) String() string {
	switch s {
	case Confirming:
		return "confirming"
	case Submitting:
		return "submitting"
	default:
		return "idle"
	}
}

// DeleteDialog asks for confirmation before deleting an item and refuses a
// second submission while the first is in flight.
type DeleteDialog[T any] struct {
	ctrl *Controller[T]
	del  func(ctx context.Context, id string) error

	mu     sync.Mutex
	state  DialogState
	target string
}

// NewDeleteDialog returns an Idle dialog that removes items from ctrl after
// del succeeds.
func NewDeleteDialog[T any](ctrl *Controller[T], del func(ctx context.Context, id string) error) *DeleteDialog[T] {
	return &DeleteDialog[T]{ctrl: ctrl, del: del}
}

// Request starts confirming the delete of id.
func (d *DeleteDialog[T]) Request(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Idle {
		return ErrDialogBusy
	}
	d.state = Confirming
	d.target = id
	return nil
}

func (d *DeleteDialog[T]) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Submitting {
		return ErrDialogBusy
	}
	d.state = Idle
	d.target = ""
	return nil
}

// Confirm deletes the requested item. The dialog returns to Idle whatever
// the outcome; on failure the item stays in the collection.
func (d *DeleteDialog[T]) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if d.state != Confirming {
		d.mu.Unlock()
		return ErrDialogBusy
	}
	d.state = Submitting
	id := d.target
	d.mu.Unlock()

	err := d.ctrl.Delete(ctx, id, func(ctx context.Context) error {
		return d.del(ctx, id)
	})

	d.mu.Lock()
	d.state = Idle
	d.target = ""
	d.mu.Unlock()
	return err
}

func (d *DeleteDialog[T]) State() DialogState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *DeleteDialog[T]) Target() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.target
}
