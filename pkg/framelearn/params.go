package framelearn

import (
	"fmt"
	"strings"
)

// paramSep joins a member or step name to a param name in nested keys.
const paramSep = "__"

func nestParams(dst map[string]any, prefix string, s Step) {
	pg, ok := s.(ParamGetter)
	if !ok {
		return
	}
	for k, v := range pg.GetParams() {
		dst[prefix+paramSep+k] = v
	}
}

func splitParams(params map[string]any) (map[string]map[string]any, error) {
	out := map[string]map[string]any{}
	for k, v := range params {
		owner, rest, ok := strings.Cut(k, paramSep)
		if !ok || owner == "" || rest == "" {
			return nil, fmt.Errorf("%w: %q is not of the form owner%sparam", ErrUnknownParam, k, paramSep)
		}
		if out[owner] == nil {
			out[owner] = map[string]any{}
		}
		out[owner][rest] = v
	}
	return out, nil
}

func setParams(s Step, params map[string]any) error {
	ps, ok := s.(ParamSetter)
	if !ok {
		return fmt.Errorf("%T: %w", s, ErrNoParams)
	}
	return ps.SetParams(params)
}

// settable reports whether SetParams on s can reach a setter. An Adapter
// is settable only when its component is.
func settable(s Step) bool {
	if a, ok := s.(*Adapter); ok {
		_, ok := a.component.(ParamSetter)
		return ok
	}
	_, ok := s.(ParamSetter)
	return ok
}
