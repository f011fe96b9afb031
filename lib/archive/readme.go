package archive

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"substack-archiver/lib/document"
	"substack-archiver/lib/scrapers/substack"
)

func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// renderReadme produces the bundle's table of contents, newest post
// first.
func renderReadme(publication substack.Publication, docs []document.Document) []byte {
	sorted := slices.Clone(docs)
	slices.SortStableFunc(sorted, func(a, b document.Document) int {
		return b.Frontmatter.Date.Compare(a.Frontmatter.Date)
	})

	var out strings.Builder
	fmt.Fprintf(&out, "# %s\n\n", publication.Name)
	if publication.Description != "" {
		fmt.Fprintf(&out, "%s\n\n", publication.Description)
	}
	fmt.Fprintf(&out, "Archived from <%s> on %s. %d posts.\n\n",
		publication.BaseUrl, time.Now().Format(time.DateOnly), len(docs))

	out.WriteString("| Date | Title | File |\n")
	out.WriteString("| --- | --- | --- |\n")
	for _, doc := range sorted {
		fmt.Fprintf(&out, "| %s | %s | [%s](./%s) |\n",
			doc.Frontmatter.Date.Format(time.DateOnly),
			escapeTableCell(doc.Frontmatter.Title),
			escapeTableCell(doc.Filename),
			doc.Filename)
	}

	return []byte(out.String())
}
