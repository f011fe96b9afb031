package archiver

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"substack-archiver/lib/images"
	"substack-archiver/lib/scrapers/substack"
)

var identifierPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*$`)

// Options configures a full archival run.
type Options struct {
	// publication subdomain or custom domain, already normalized by
	// substack.ExtractIdentifier
	Identifier string
	// raw cookie string pasted by the user, may be empty
	Credential string
	UserAgent  string
	// minimum delay between publication requests; zero means the
	// default pacing
	MinRequestInterval time.Duration
	ImageWorkers       int
	// overrides the https://<identifier>.substack.com origin; used by
	// tests to point the client at a local server
	DefaultOrigin string
}

func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Identifier,
			validation.Required,
			validation.Match(identifierPattern)),
		validation.Field(&o.MinRequestInterval, validation.Min(time.Duration(0))),
		validation.Field(&o.ImageWorkers, validation.Min(0)),
	)
}

func (o Options) withDefaults() Options {
	if o.MinRequestInterval == 0 {
		o.MinRequestInterval = substack.DefaultMinRequestInterval
	}
	if o.ImageWorkers == 0 {
		o.ImageWorkers = images.DefaultWorkers
	}
	return o
}
