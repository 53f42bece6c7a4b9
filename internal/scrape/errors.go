package scrape

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAmbiguousSource indicates a source that is neither a readable local
// HTML file nor a well-formed URL. Fatal, surfaced immediately.
var ErrAmbiguousSource = errors.New("cannot determine whether source is a URL or an HTML file")

// AcquisitionError reports that no acquisition strategy yielded usable
// content. Fatal for the run; Attempts records what each strategy saw.
type AcquisitionError struct {
	Source   string
	Attempts []string
}

func (e *AcquisitionError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("could not load content from %s", e.Source)
	}
	return fmt.Sprintf("could not load content from %s: %s", e.Source, strings.Join(e.Attempts, "; "))
}
