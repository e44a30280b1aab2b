package edit

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-mediaui/pkg/media"
)

// Loader fetches and updates media items.
type Loader interface {
	Get(ctx context.Context, id string) (media.Item, error)
	Patch(ctx context.Context, item media.Item) (media.Item, error)
}

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(path string)
}

// MessageQueue holds a message for the next page the user sees.
type MessageQueue interface {
	SetForNextPageLoad(message string)
}

// OwnershipChecker decides whether the current user may edit items of a
// channel. channel is nil for items without one.
type OwnershipChecker interface {
	CanEdit(ctx context.Context, channel *media.ChannelRef) (bool, error)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// MessageQueueFunc adapts a function to MessageQueue.
type MessageQueueFunc func(message string)

func (f MessageQueueFunc) SetForNextPageLoad(message string) { f(message) }

// Dependencies are the collaborators every controller needs.
type Dependencies struct {
	Loader    Loader
	Navigator Navigator
	Messages  MessageQueue
	Ownership OwnershipChecker
}

// Option customises a controller.
type Option func(*Controller)

// WithLogger sets the logger used for load and save outcomes.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSuccessMessage overrides the message queued after a successful save.
func WithSuccessMessage(message string) Option {
	return func(c *Controller) {
		if message != "" {
			c.successMessage = message
		}
	}
}

// WithUnavailableMessage overrides the form-level message shown when a save
// fails without a structured error body.
func WithUnavailableMessage(message string) Option {
	return func(c *Controller) {
		if message != "" {
			c.unavailableMessage = message
		}
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
