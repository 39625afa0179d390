// Package standardize provides string clean-up functions for the outputs
// of a framelearn.Trans.
package standardize

import (
	"fmt"

	"github.com/wdm0006/framelearn/pkg/frame"
	"github.com/wdm0006/framelearn/pkg/framelearn"
)

// mapStrings applies fn to every non-null value of a string series.
func mapStrings(op string, fn func(string) string) framelearn.SeriesFunc {
	return func(s *frame.Series) (*frame.Series, error) {
		in, ok := s.Column().(*frame.StringColumn)
		if !ok {
			return nil, fmt.Errorf("%s: column %s is %s, want string", op, s.Name(), s.Kind())
		}
		out := frame.NewStringColumn(s.Name(), in.Len())
		for i := 0; i < in.Len(); i++ {
			v, ok := in.Get(i)
			if !ok {
				out.SetNull(i)
				continue
			}
			out.Set(i, fn(v))
		}
		return frame.SeriesOf(out, s.Index())
	}
}
