package edit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-mediaui/pkg/form"
	"github.com/goliatone/go-mediaui/pkg/media"
	"github.com/goliatone/go-mediaui/pkg/routes"
)

const (
	// SuccessMessage is queued for the next page after a successful save.
	SuccessMessage = "The media item has been updated."
	// CannotEditMessage replaces the form when the ownership gate fails.
	CannotEditMessage = "You cannot edit this media item."
	// UnavailableMessage is shown when a save fails without field errors.
	UnavailableMessage = "The media item could not be saved. Please try again."
)

// State is the controller's position in the edit lifecycle.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateEditing
	StateSaving
	StateSaveFailed
	StateSaveSucceeded
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	case StateSaveFailed:
		return "save_failed"
	case StateSaveSucceeded:
		return "save_succeeded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Controller coordinates load, edit and save of one media item.
type Controller struct {
	deps   Dependencies
	logger *log.Logger

	successMessage     string
	unavailableMessage string

	mu         sync.Mutex
	state      State
	item       media.Item
	errors     media.FieldErrorSet
	formErrors []string
	canEdit    bool
}

// New builds a controller in the Loading state.
func New(deps Dependencies, options ...Option) (*Controller, error) {
	switch {
	case deps.Loader == nil:
		return nil, errors.New("edit: loader is required")
	case deps.Navigator == nil:
		return nil, errors.New("edit: navigator is required")
	case deps.Messages == nil:
		return nil, errors.New("edit: message queue is required")
	case deps.Ownership == nil:
		return nil, errors.New("edit: ownership checker is required")
	}

	c := &Controller{
		deps:               deps,
		logger:             discardLogger(),
		successMessage:     SuccessMessage,
		unavailableMessage: UnavailableMessage,
		state:              StateLoading,
		item:               media.Placeholder(),
		errors:             media.FieldErrorSet{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Load fetches the item and runs the ownership gate. A failed ownership
// lookup counts as "cannot edit".
func (c *Controller) Load(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.state != StateLoading {
		c.mu.Unlock()
		return ErrAlreadyLoaded
	}
	c.mu.Unlock()

	item, err := c.deps.Loader.Get(ctx, id)
	if err != nil {
		c.logger.Warn("load failed", "id", id, "err", err)
		return &LoadError{ID: id, Err: err}
	}
	if !item.Loaded() {
		item.ID = id
	}

	canEdit, err := c.deps.Ownership.CanEdit(ctx, item.Channel)
	if err != nil {
		c.logger.Warn("ownership check failed", "id", id, "channel", item.ChannelID(), "err", err)
		canEdit = false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateLoading {
		return ErrAlreadyLoaded
	}
	c.item = item
	c.errors = media.FieldErrorSet{}
	c.formErrors = nil
	c.canEdit = canEdit
	c.state = StateLoaded
	c.logger.Debug("item loaded", "id", id, "can_edit", canEdit)
	return nil
}

// ApplyPatch merges patch into the held item.
func (c *Controller) ApplyPatch(patch media.Patch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return err
	}
	c.item = c.item.Apply(patch)
	c.state = StateEditing
	return nil
}

// Save sends the full item to the update endpoint. On success the
// confirmation is queued before navigating; on failure the error state is
// replaced and a *SaveError is returned.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if err := c.editableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = StateSaving
	snapshot := c.item
	c.mu.Unlock()

	updated, err := c.deps.Loader.Patch(ctx, snapshot)

	c.mu.Lock()
	if err != nil {
		c.failLocked(err)
		c.mu.Unlock()
		c.logger.Warn("save failed", "id", snapshot.ID, "err", err)
		return &SaveError{ID: snapshot.ID, Err: err}
	}

	if updated.Loaded() {
		c.item = updated
	}
	c.errors = media.FieldErrorSet{}
	c.formErrors = nil
	c.state = StateSaveSucceeded
	id := c.item.ID
	c.mu.Unlock()

	c.logger.Info("item saved", "id", id)
	c.deps.Messages.SetForNextPageLoad(c.successMessage)
	c.deps.Navigator.Navigate(routes.MediaViewPath(id))
	return nil
}

// Cancel navigates to the view route without saving.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	switch {
	case c.state == StateLoading:
		c.mu.Unlock()
		return ErrNotLoaded
	case c.state == StateSaveSucceeded:
		c.mu.Unlock()
		return ErrFinished
	case !c.canEdit:
		c.mu.Unlock()
		return ErrForbidden
	}
	id := c.item.ID
	c.mu.Unlock()

	c.deps.Navigator.Navigate(routes.MediaViewPath(id))
	return nil
}

// State reports the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Item returns a copy of the held item.
func (c *Controller) Item() media.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.item
}

// Errors returns a copy of the field errors of the last failed save.
func (c *Controller) Errors() media.FieldErrorSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.Clone()
}

// FormErrors returns messages of the last failed save not tied to a field.
func (c *Controller) FormErrors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.formErrors...)
}

// CanEdit reports the outcome of the ownership gate.
func (c *Controller) CanEdit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canEdit
}

// Props returns the form props for the current state. OnChange applies
// patches to this controller.
func (c *Controller) Props() form.Props {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.propsLocked()
}

func (c *Controller) propsLocked() form.Props {
	return form.Props{
		Item:     c.item,
		Errors:   c.errors.Clone(),
		Disabled: c.state == StateSaving,
		OnChange: func(patch media.Patch) {
			if err := c.ApplyPatch(patch); err != nil {
				c.logger.Debug("patch ignored", "fields", patch.Fields(), "err", err)
			}
		},
	}
}

func (c *Controller) editableLocked() error {
	switch {
	case c.state == StateLoading:
		return ErrNotLoaded
	case c.state == StateSaveSucceeded:
		return ErrFinished
	case c.state == StateSaving:
		return ErrSaveInFlight
	case !c.canEdit:
		return ErrForbidden
	}
	return nil
}

// failLocked folds a save failure into the error state. Structured errors
// replace the field errors verbatim; anything else becomes a form message so
// the failure stays visible.
func (c *Controller) failLocked(err error) {
	c.state = StateSaveFailed

	var validation *media.ValidationError
	if errors.As(err, &validation) {
		c.errors = validation.Fields.Clone()
		c.formErrors = media.MergeFormErrors(nil, validation.Form...)
		if len(c.errors) == 0 && len(c.formErrors) == 0 {
			c.formErrors = []string{c.unavailableMessage}
		}
		return
	}
	c.errors = media.FieldErrorSet{}
	c.formErrors = []string{c.unavailableMessage}
}
