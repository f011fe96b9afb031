package document

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

const defaultImageExtension = "jpg"

func DocumentFilename(date time.Time, slug string) string {
	return fmt.Sprintf("%s-%s.md", date.Format(time.DateOnly), slug)
}

// ImageFilename is deterministic for a (date, slug) pair: images of one
// post differ only by their 1-based index, which keeps names unique
// within a run and stable across runs.
func ImageFilename(date time.Time, slug string, index int, extension string) string {
	return fmt.Sprintf("%s-%s-image-%d.%s", date.Format(time.DateOnly), slug, index+1, extension)
}

// ExtensionFromUrl sniffs a known image extension from the url path,
// falling back to a fixed default for unrecognized or dynamic urls.
func ExtensionFromUrl(rawUrl string) string {
	parsed, err := url.Parse(rawUrl)
	if err != nil {
		return defaultImageExtension
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(parsed.Path), "."))
	if imageExtensions[ext] {
		return ext
	}
	return defaultImageExtension
}
