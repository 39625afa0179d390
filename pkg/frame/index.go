package frame

import "strconv"

// Index holds the ordered row labels of a Frame or Series. Labels are not
// required to be positional.
type Index []string

// RangeIndex labels n rows "0".."n-1".
func RangeIndex(n int) Index {
	idx := make(Index, n)
	for i := range idx {
		idx[i] = strconv.Itoa(i)
	}
	return idx
}

// Equal reports whether both indexes hold the same labels in the same order.
func (x Index) Equal(y Index) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func (x Index) Clone() Index {
	if x == nil {
		return nil
	}
	out := make(Index, len(x))
	copy(out, x)
	return out
}
