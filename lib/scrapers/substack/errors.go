package substack

import (
	"fmt"
	"net/http"
)

var ErrAuthenticationFailed = fmt.Errorf("authentication failed, the session cookie may be invalid or expired")

// ErrNoArchive means neither the listing api nor the archive page
// produced a post listing.
var ErrNoArchive = fmt.Errorf("could not obtain a post listing for the publication")

// StatusError is a non-2xx response from the publication.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (%s)", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}
