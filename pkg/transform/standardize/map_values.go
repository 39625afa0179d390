package standardize

import "github.com/wdm0006/framelearn/pkg/framelearn"

// MapValues replaces values found in m. Other values pass through.
func MapValues(m map[string]string) framelearn.SeriesFunc {
	return mapStrings("map_values", func(v string) string {
		if nv, ok := m[v]; ok {
			return nv
		}
		return v
	})
}
