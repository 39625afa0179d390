package standardize

import (
	"fmt"
	"regexp"

	"github.com/wdm0006/framelearn/pkg/framelearn"
)

// RegexReplace replaces every match of pattern with repl, which may use
// $1-style references.
func RegexReplace(pattern, repl string) (framelearn.SeriesFunc, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("regex_replace: %w", err)
	}
	return mapStrings("regex_replace", func(v string) string {
		return re.ReplaceAllString(v, repl)
	}), nil
}
