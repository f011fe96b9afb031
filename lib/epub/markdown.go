package epub

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"substack-archiver/lib/document"
)

var (
	frontmatterBlock = regexp.MustCompile(`(?s)^---\n.*?\n---\n`)
	leadingTitle     = regexp.MustCompile(`^\s*# [^\n]*\n`)
	localImageTag    = regexp.MustCompile(`<img([^>]*?)src="\.?/?images/([^"]+)"([^>]*?)\s*/?>`)
	imgTag           = regexp.MustCompile(`<img[^>]*>`)
)

// chapter markup has to be self contained, so images are inlined as
// data uris
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		html.WithXHTML(),
		html.WithUnsafe(),
	),
)

// renderChapter converts one document's markdown into a self-contained
// xhtml body: frontmatter stripped, local images embedded, anything
// still pointing outside the book removed.
func renderChapter(doc document.Document, imageMap map[string][]byte) (string, error) {
	source := frontmatterBlock.ReplaceAllString(doc.Markdown, "")
	// the dated chapter heading replaces the document's own title line
	source = leadingTitle.ReplaceAllString(source, "")

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}

	body := embedImages(buf.String(), imageMap)
	return dropDanglingImages(body), nil
}

func embedImages(body string, imageMap map[string][]byte) string {
	return localImageTag.ReplaceAllStringFunc(body, func(tag string) string {
		parts := localImageTag.FindStringSubmatch(tag)
		payload, ok := imageMap[parts[2]]
		if !ok {
			return ""
		}
		uri := fmt.Sprintf("data:%s;base64,%s",
			mimeTypeFor(parts[2]), base64.StdEncoding.EncodeToString(payload))
		return fmt.Sprintf(`<img%ssrc="%s"%s/>`, parts[1], uri, parts[3])
	})
}

// dropDanglingImages removes img tags whose source never got embedded;
// epub readers reject references to resources outside the container.
func dropDanglingImages(body string) string {
	return imgTag.ReplaceAllStringFunc(body, func(tag string) string {
		if strings.Contains(tag, `src="data:`) {
			return tag
		}
		return ""
	})
}

func mimeTypeFor(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".png"):
		return "image/png"
	case strings.HasSuffix(filename, ".gif"):
		return "image/gif"
	case strings.HasSuffix(filename, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
