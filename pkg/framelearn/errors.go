package framelearn

import (
	"errors"
	"fmt"

	"github.com/wdm0006/framelearn/pkg/frame"
)

var (
	ErrNotFitted            = errors.New("not fitted")
	ErrNoAttribute          = errors.New("no such attribute")
	ErrNoParams             = errors.New("component has no settable params")
	ErrNotTransformer       = errors.New("component cannot transform")
	ErrNotPredictor         = errors.New("component cannot predict")
	ErrUnsupportedComponent = errors.New("unsupported component")
	ErrInvalidTrans         = errors.New("invalid trans")
	ErrEmptyUnion           = errors.New("union has no members")
	ErrEmptyChain           = errors.New("chain has no steps")
	ErrUnknownParam         = errors.New("unknown param")
)

// DuplicateMemberError reports a union member name used more than once.
type DuplicateMemberError struct {
	Name string
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("duplicate union member name %q", e.Name)
}

// IndexMismatchError reports a union member whose output row index differs
// from the first member's.
type IndexMismatchError struct {
	Member string
}

func (e *IndexMismatchError) Error() string {
	return fmt.Sprintf("union member %s: %s", e.Member, frame.ErrIndexMismatch)
}

func (e *IndexMismatchError) Is(target error) bool { return target == frame.ErrIndexMismatch }
