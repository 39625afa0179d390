package standardize

import (
	"strings"

	"github.com/wdm0006/framelearn/pkg/framelearn"
)

// Trim strips leading and trailing white space.
func Trim() framelearn.SeriesFunc { return mapStrings("trim", strings.TrimSpace) }
