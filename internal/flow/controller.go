// Package flow runs the directory round-trips: every write to the backend is followed
// by a full re-fetch, and every outcome is reported as a notification.
package flow

import (
	"context"
	"empdir/internal/directory"
	"empdir/internal/ports"
	"empdir/internal/types"
	"sync"

	log "github.com/sirupsen/logrus"
)

// User-facing messages.
const (
	MsgLoadFailed    = "Failed to load employees. Please try again."
	MsgLoadOneFailed = "Failed to load employee data"
	MsgCreateFailed  = "Failed to create employee"
	MsgUpdateFailed  = "Failed to update employee"
	MsgDeleteFailed  = "Failed to delete employee"
	MsgCreated       = "Employee added successfully"
	MsgUpdated       = "Employee updated successfully"
	MsgDeleted       = "Employee deleted successfully"

	ConfirmDelete = "Are you sure you want to delete this employee?"
)

// Controller keeps Store consistent with the backend. Operations never touch the
// store speculatively: the store changes only through FetchAll (or Search for the term).
// Failures are turned into an "Error" notification at the operation boundary and also
// returned, so callers can decide on an exit status; nothing is retried.
type Controller struct {
	Store     *directory.Store
	API       ports.EmployeeAPI
	Notifier  ports.Notifier
	Renderer  ports.Renderer
	Confirmer ports.Confirmer

	// mu orders refresh results: a list fetched by an older FetchAll is dropped
	// once a newer one has been applied.
	mu      sync.Mutex
	issued  uint64
	applied uint64
}

// New returns a controller with an empty store. renderer may be nil.
func New(api ports.EmployeeAPI, notifier ports.Notifier, renderer ports.Renderer, confirmer ports.Confirmer) *Controller {
	return &Controller{
		Store:     directory.NewStore(),
		API:       api,
		Notifier:  notifier,
		Renderer:  renderer,
		Confirmer: confirmer,
	}
}

// FetchAll replaces the authoritative list with the backend's. On failure the list is
// cleared so nothing stale stays on screen. A result (list or failure) that arrives after
// a newer FetchAll was applied is dropped and leaves the store alone; a failure is still notified.
func (c *Controller) FetchAll(ctx context.Context) error {
	token := c.nextToken()
	list, err := c.API.List(ctx)

	c.mu.Lock()
	current := token > c.applied
	if current {
		c.applied = token
		if err != nil {
			c.Store.Clear()
		} else {
			c.Store.ReplaceAll(list)
		}
	}
	c.mu.Unlock()

	if !current {
		log.WithFields(log.Fields{"token": token}).Debug("dropping stale refresh")
	} else {
		c.render()
	}
	if err != nil {
		log.WithError(err).Warn("Error loading employees")
		c.notify(ctx, types.Failure(MsgLoadFailed))
		return err
	}
	return nil
}

// FetchOne loads a single record, e.g. to prefill an edit form. The store is not touched.
func (c *Controller) FetchOne(ctx context.Context, id int64) (types.Employee, error) {
	e, err := c.API.Get(ctx, id)
	if err != nil {
		log.WithError(err).WithField("id", id).Warn("Error fetching employee")
		c.notify(ctx, types.Failure(MsgLoadOneFailed))
		return types.Employee{}, err
	}
	return e, nil
}

// Create validates draft locally and, if it passes, asks the backend to store it.
// The returned record carries the backend-assigned id.
func (c *Controller) Create(ctx context.Context, draft types.Draft) (types.Employee, error) {
	d, err := c.validate(ctx, draft)
	if err != nil {
		return types.Employee{}, err
	}
	created, err := c.API.Create(ctx, d)
	if err != nil {
		log.WithError(err).Warn("Error saving employee")
		c.notify(ctx, types.Failure(MsgCreateFailed))
		return types.Employee{}, err
	}
	c.notify(ctx, types.Success(MsgCreated))
	c.refresh(ctx)
	return created, nil
}

// Update replaces every editable field of the record id with draft.
func (c *Controller) Update(ctx context.Context, id int64, draft types.Draft) (types.Employee, error) {
	d, err := c.validate(ctx, draft)
	if err != nil {
		return types.Employee{}, err
	}
	updated, err := c.API.Update(ctx, id, d)
	if err != nil {
		log.WithError(err).WithField("id", id).Warn("Error saving employee")
		c.notify(ctx, types.Failure(MsgUpdateFailed))
		return types.Employee{}, err
	}
	c.notify(ctx, types.Success(MsgUpdated))
	c.refresh(ctx)
	return updated, nil
}

// Delete removes the record id after the user confirmed. A declined (or failed)
// confirmation returns types.ErrCancelled without contacting the backend.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if c.Confirmer == nil {
		return types.ErrCancelled
	}
	ok, err := c.Confirmer.Confirm(ctx, ConfirmDelete)
	if err != nil {
		return types.Err(types.ErrCancelled, err, "")
	}
	if !ok {
		return types.ErrCancelled
	}
	if err := c.API.Delete(ctx, id); err != nil {
		log.WithError(err).WithField("id", id).Warn("Error deleting employee")
		c.notify(ctx, types.Failure(MsgDeleteFailed))
		return err
	}
	c.refresh(ctx)
	c.notify(ctx, types.Success(MsgDeleted))
	return nil
}

// Search sets the search term and renders the derived view. No request is made.
func (c *Controller) Search(term string) []types.Employee {
	c.Store.SetTerm(term)
	c.render()
	return c.Store.View()
}

func (c *Controller) validate(ctx context.Context, draft types.Draft) (types.Draft, error) {
	d := draft.Normalize()
	if err := d.Validate(); err != nil {
		c.notify(ctx, types.Failure(types.MsgInvalidEmail))
		return types.Draft{}, err
	}
	return d, nil
}

// refresh re-fetches after a successful write. A failure is already reported by
// FetchAll and does not turn the write into a failure.
func (c *Controller) refresh(ctx context.Context) {
	if err := c.FetchAll(ctx); err != nil {
		log.WithError(err).Debug("refresh after write failed")
	}
}

func (c *Controller) nextToken() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

func (c *Controller) render() {
	if c.Renderer == nil {
		return
	}
	view, stats := c.Store.Snapshot()
	c.Renderer.Render(view, stats)
}

func (c *Controller) notify(ctx context.Context, n types.Notification) {
	if c.Notifier == nil {
		return
	}
	if err := c.Notifier.Notify(ctx, n); err != nil {
		log.WithError(err).WithField("title", n.Title).Warn("notification not delivered")
	}
}
