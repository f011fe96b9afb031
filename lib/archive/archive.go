// Package archive assembles the zip bundle that holds an entire
// publication archive: documents at the root, payloads under images/,
// plus a generated README.md and metadata.json.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"substack-archiver/lib/document"
	"substack-archiver/lib/scrapers/substack"
)

var tracer = otel.Tracer("lib/archive")

// Filename names an output archive after the publication and the day
// it was produced.
func Filename(identifier, extension string, now time.Time) string {
	return fmt.Sprintf("%s-archive-%s.%s", identifier, now.Format(time.DateOnly), extension)
}

// BuildZip writes the bundle into memory. Image entries are written in
// sorted order so the same inputs always produce the same layout.
func BuildZip(
	ctx context.Context,
	publication substack.Publication,
	docs []document.Document,
	imageMap map[string][]byte,
) ([]byte, error) {
	_, span := tracer.Start(ctx, "BuildZip")
	defer span.End()

	fail := func(err error) ([]byte, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	write := func(name string, body []byte) error {
		entry, err := writer.Create(name)
		if err != nil {
			return err
		}
		_, err = entry.Write(body)
		return err
	}

	if err := write("README.md", renderReadme(publication, docs)); err != nil {
		return fail(err)
	}

	metadata, err := renderMetadata(publication, docs, imageMap)
	if err != nil {
		return fail(err)
	}
	if err := write("metadata.json", metadata); err != nil {
		return fail(err)
	}

	imageNames := make([]string, 0, len(imageMap))
	for name := range imageMap {
		imageNames = append(imageNames, name)
	}
	sort.Strings(imageNames)
	for _, name := range imageNames {
		if err := write("images/"+name, imageMap[name]); err != nil {
			return fail(err)
		}
	}

	for _, doc := range docs {
		if err := write(doc.Filename, []byte(doc.Markdown)); err != nil {
			return fail(err)
		}
	}

	if err := writer.Close(); err != nil {
		return fail(err)
	}
	return buf.Bytes(), nil
}
