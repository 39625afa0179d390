package frame

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn matches any MissingColumnsError.
	ErrMissingColumn   = errors.New("missing column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrLengthMismatch  = errors.New("length mismatch")
	ErrNotNumeric      = errors.New("column is not numeric")
	ErrIndexMismatch   = errors.New("row index mismatch")
)

// MissingColumnsError names every requested column absent from a frame.
type MissingColumnsError struct {
	Names []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing column(s): %s", strings.Join(e.Names, ", "))
}

func (e *MissingColumnsError) Is(target error) bool { return target == ErrMissingColumn }

// IndexMismatchError reports a frame whose row index differs from the
// first frame in a concatenation.
type IndexMismatchError struct {
	Position int
	Want     Index
	Got      Index
}

func (e *IndexMismatchError) Error() string {
	return fmt.Sprintf("frame %d: %s: %d labels, want %d matching labels", e.Position, ErrIndexMismatch, len(e.Got), len(e.Want))
}

func (e *IndexMismatchError) Is(target error) bool { return target == ErrIndexMismatch }
