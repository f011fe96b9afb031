package substack

import "time"

// Publication describes the source being archived. built once per run
// and never mutated afterwards.
type Publication struct {
	Name        string `json:"name"`
	Identifier  string `json:"identifier"`
	Description string `json:"description"`
	Author      string `json:"author"`
	// canonical identifier-derived url
	Url string `json:"url"`
	// the origin that actually serves the publication's api and pages;
	// differs from Url when the publication moved to a custom domain
	BaseUrl        string `json:"baseUrl"`
	HasPaidContent bool   `json:"hasPaidContent"`
}

// PostReference is a lightweight listing entry pointing at a post that
// has not been fetched yet.
type PostReference struct {
	Slug  string
	Title string
	Url   string
	// zero when the listing had no machine readable date (html
	// fallback); filled in from the post page during the fetch
	PublishedAt time.Time
	Paid        bool
}

// RawPost is a fully fetched post with its body still in the source
// markup.
type RawPost struct {
	Slug        string
	Title       string
	Subtitle    string
	Author      string
	PublishedAt time.Time
	Url         string
	BodyHtml    string
	Images      []ImageRef
	Paid        bool
}

// ImageRef points at an image embedded in a post body. LocalName stays
// empty until the document transformer assigns one; the downloaded
// payload lives in the run's image map keyed by LocalName.
type ImageRef struct {
	RemoteUrl string
	LocalName string
	Alt       string
}
