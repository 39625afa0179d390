package validate

import (
	"errors"
	"fmt"

	"github.com/wdm0006/framelearn/pkg/frame"
	"github.com/wdm0006/framelearn/pkg/framelearn"
)

// ErrNotInSet is returned when string cells fall outside the allowed values.
var ErrNotInSet = errors.New("values outside allowed set")

// InSet passes a string series through unchanged if every non-null value
// is one of values.
func InSet(values ...string) framelearn.SeriesFunc {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return func(s *frame.Series) (*frame.Series, error) {
		sc, ok := s.Column().(*frame.StringColumn)
		if !ok {
			return nil, fmt.Errorf("validate_in: column %s is %s, want string", s.Name(), s.Kind())
		}
		var bad int
		for i := 0; i < sc.Len(); i++ {
			v, ok := sc.Get(i)
			if !ok {
				continue
			}
			if _, ok := allowed[v]; !ok {
				bad++
			}
		}
		if bad > 0 {
			return nil, fmt.Errorf("validate_in: %w: column %s has %d values", ErrNotInSet, s.Name(), bad)
		}
		return s, nil
	}
}
