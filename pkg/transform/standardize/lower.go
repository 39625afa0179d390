package standardize

import (
	"strings"

	"github.com/wdm0006/framelearn/pkg/framelearn"
)

func Lower() framelearn.SeriesFunc { return mapStrings("lower", strings.ToLower) }
