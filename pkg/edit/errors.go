package edit

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned by operations that need a loaded item.
	ErrNotLoaded = errors.New("edit: item not loaded")
	// ErrAlreadyLoaded is returned when Load is called twice.
	ErrAlreadyLoaded = errors.New("edit: item already loaded")
	// ErrFinished is returned once a save has succeeded.
	ErrFinished = errors.New("edit: controller finished")
	// ErrForbidden is returned when the ownership gate fails.
	ErrForbidden = errors.New("edit: not allowed to edit this item")
	// ErrSaveInFlight is returned while a save request is outstanding.
	ErrSaveInFlight = errors.New("edit: save already in flight")
	// ErrLoad matches every LoadError.
	ErrLoad = errors.New("edit: load failed")
)

// LoadError reports a failed fetch. It is left to the page to decide how the
// failure is shown.
type LoadError struct {
	ID  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("edit: load %q: %v", e.ID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrLoad) match any LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// SaveError reports a failed save. The failure has already been folded into
// the controller's error state; the value exists for logging and status codes.
type SaveError struct {
	ID  string
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("edit: save %q: %v", e.ID, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }
