// Package document turns fetched posts into self-contained markdown
// documents: frontmatter, converted body, and image references pointed
// at local paths. the whole package is a pure transformation, it
// performs no i/o.
package document

import (
	"fmt"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// Converter holds a configured markup-to-markdown converter. it is
// stateless after construction and safe to reuse across posts.
type Converter struct {
	md *md.Converter
}

func NewConverter() *Converter {
	conv := md.NewConverter("", true, &md.Options{
		HeadingStyle:     "atx",
		BulletListMarker: "-",
		CodeBlockStyle:   "fenced",
		EmDelimiter:      "*",
		StrongDelimiter:  "**",
		LinkStyle:        "inlined",
	})
	conv.AddRules(
		figureRule,
		embedRule,
		blockquoteRule,
		codeBlockRule,
	)
	return &Converter{md: conv}
}

// captioned figures collapse to a plain image reference; the image alt
// wins over the caption when both exist
var figureRule = md.Rule{
	Filter: []string{"figure"},
	Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
		img := selec.Find("img").First()
		if img.Length() == 0 {
			return md.String(content)
		}
		alt := img.AttrOr("alt", "")
		if alt == "" {
			alt = strings.TrimSpace(selec.Find("figcaption").First().Text())
		}
		return md.String(fmt.Sprintf("\n\n![%s](%s)\n\n", alt, img.AttrOr("src", "")))
	},
}

// social/video embed containers become a link to the embedded target,
// or a placeholder when the embed carries no anchor at all
var embedRule = md.Rule{
	Filter: []string{"div"},
	Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
		if !selec.HasClass("tweet") && !selec.HasClass("youtube") && !selec.HasClass("embedded") {
			return nil
		}
		link := selec.Find("a").First()
		if link.Length() == 0 {
			return md.String("\n\n[Embedded content]\n\n")
		}
		text := strings.TrimSpace(link.Text())
		if text == "" {
			text = "Embedded content"
		}
		return md.String(fmt.Sprintf("\n\n[%s](%s)\n\n", text, link.AttrOr("href", "")))
	},
}

// every line of a quoted block gets the leading marker, not just the
// first one
var blockquoteRule = md.Rule{
	Filter: []string{"blockquote"},
	Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
		lines := strings.Split(strings.TrimSpace(content), "\n")
		for i, line := range lines {
			lines[i] = "> " + line
		}
		return md.String("\n\n" + strings.Join(lines, "\n") + "\n\n")
	},
}

var languageClassRegex = regexp.MustCompile(`language-(\w+)`)

var codeBlockRule = md.Rule{
	Filter: []string{"pre"},
	Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
		code := selec.Find("code").First()
		if code.Length() == 0 {
			return nil
		}
		language := ""
		if m := languageClassRegex.FindStringSubmatch(code.AttrOr("class", "")); m != nil {
			language = m[1]
		}
		return md.String(fmt.Sprintf("\n\n```%s\n%s\n```\n\n", language, code.Text()))
	},
}
