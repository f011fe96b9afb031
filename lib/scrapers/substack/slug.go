package substack

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugHyphens  = regexp.MustCompile(`-+`)
)

// Slugify synthesizes a url-safe slug from a post title, for listing
// entries whose link carries no slug of its own.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// slugFromPostUrl extracts the slug from a canonical /p/<slug> link.
func slugFromPostUrl(link string) string {
	_, after, found := strings.Cut(link, "/p/")
	if !found {
		return ""
	}
	slug, _, _ := strings.Cut(after, "?")
	return strings.Trim(slug, "/")
}
