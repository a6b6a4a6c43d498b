package odr2lanelet2

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyBoundary is the cause when lanelet boundary has no vertices
	ErrEmptyBoundary = errors.New("boundary has no vertices")
	// ErrProjection is the cause when projection collaborator fails on a vertex
	ErrProjection = errors.New("can't project vertex")
	// ErrDuplicateLanelet is the cause when two lanelets share the same id
	ErrDuplicateLanelet = errors.New("duplicate lanelet id")
	// ErrBadFeature is the cause when input feature can't be turned into lanelet
	ErrBadFeature = errors.New("malformed lanelet feature")
)

// InputError is fatal input error. It aborts the whole conversion.
type InputError struct {
	LaneletID string
	Err       error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("lanelet '%s': %s", e.LaneletID, e.Err.Error())
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Cause allows errors.Cause to reach underlying error
func (e *InputError) Cause() error {
	return e.Err
}

func newInputError(laneletID string, err error) error {
	return &InputError{
		LaneletID: laneletID,
		Err:       err,
	}
}
