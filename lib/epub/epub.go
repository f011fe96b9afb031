// Package epub assembles an EPUB 3 ebook from archived documents, one
// chapter per post in chronological order.
package epub

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"substack-archiver/lib/document"
	"substack-archiver/lib/scrapers/substack"
)

var tracer = otel.Tracer("lib/epub")

var ErrNoChapters = fmt.Errorf("no documents could be rendered into chapters")

type chapter struct {
	Title string
	Body  string
}

// Build renders the documents into an EPUB. Documents that fail to
// render are skipped; producing zero chapters is an error.
func Build(
	ctx context.Context,
	publication substack.Publication,
	docs []document.Document,
	imageMap map[string][]byte,
) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Build")
	defer span.End()

	sorted := slices.Clone(docs)
	slices.SortStableFunc(sorted, func(a, b document.Document) int {
		return a.Frontmatter.Date.Compare(b.Frontmatter.Date)
	})

	chapters := make([]chapter, 0, len(sorted))
	for _, doc := range sorted {
		body, err := renderChapter(doc, imageMap)
		if err != nil {
			slog.WarnContext(ctx, "skipping unrenderable chapter",
				"file", doc.Filename, "err", err)
			continue
		}
		chapters = append(chapters, chapter{
			Title: fmt.Sprintf("%s (%s)",
				doc.Frontmatter.Title,
				doc.Frontmatter.Date.Format("Jan 2, 2006")),
			Body: body,
		})
	}
	if len(chapters) == 0 {
		span.RecordError(ErrNoChapters)
		span.SetStatus(codes.Error, ErrNoChapters.Error())
		return nil, ErrNoChapters
	}

	out, err := writeContainer(publication, chapters, time.Now())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return out, nil
}
