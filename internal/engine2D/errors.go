package engine2D

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidObject matches every *ValidationError.
	ErrInvalidObject = errors.New("invalid scene object")

	// ErrCallbackLeak reports per-frame callbacks still running after
	// teardown.
	ErrCallbackLeak = errors.New("per-frame callback still active after teardown")

	ErrAlreadyMounted = errors.New("scene is already mounted")
	ErrTornDown       = errors.New("scene has been torn down")
)

// ValidationError describes a malformed scene object. The object is skipped;
// the rest of the scene keeps rendering.
type ValidationError struct {
	ObjectID string
	Reason   string
}

func (e *ValidationError) Error() string {
	id := e.ObjectID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("object %s: %s", id, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidObject
}
