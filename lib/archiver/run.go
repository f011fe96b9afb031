package archiver

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"

	"substack-archiver/lib/archive"
	"substack-archiver/lib/images"
	"substack-archiver/lib/scrapers/substack"
)

// Format selects the output container.
type Format string

const (
	FormatZip  Format = "zip"
	FormatEpub Format = "epub"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatZip, FormatEpub:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want zip or epub)", s)
	}
}

// RunResult is everything a caller needs to persist a finished run.
type RunResult struct {
	Filename    string
	Data        []byte
	Publication substack.Publication
	PostCount   int
	ImageCount  int
}

// Run executes the whole pipeline end to end and returns the assembled
// archive. Discovering zero posts fails the run; per-post and per-image
// failures only shrink the output.
func (a *Archiver) Run(
	ctx context.Context,
	format Format,
	dateRange substack.DateRange,
	onPost PostProgressFunc,
	onImage images.ProgressFunc,
) (RunResult, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	fail := func(err error) (RunResult, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return RunResult{}, err
	}

	publication, err := a.ResolvePublication(ctx)
	if err != nil {
		return fail(err)
	}

	refs, err := a.DiscoverPosts(ctx, publication.BaseUrl, dateRange)
	if err != nil {
		return fail(err)
	}
	if len(refs) == 0 {
		return fail(fmt.Errorf("no posts found for %s", a.opts.Identifier))
	}

	posts := a.FetchAllPosts(ctx, publication.BaseUrl, refs, onPost)
	if len(posts) == 0 {
		return fail(fmt.Errorf("all %d posts failed to fetch", len(refs)))
	}

	docs := a.Transform(posts, publication.Name)
	imageMap := a.RetrieveImages(ctx, docs, onImage)

	var data []byte
	switch format {
	case FormatEpub:
		data, err = a.AssembleEbook(ctx, publication, docs, imageMap)
	default:
		data, err = a.AssembleBundle(ctx, publication, docs, imageMap)
	}
	if err != nil {
		return fail(err)
	}

	return RunResult{
		Filename:    archive.Filename(a.opts.Identifier, string(format), time.Now()),
		Data:        data,
		Publication: publication,
		PostCount:   len(docs),
		ImageCount:  len(imageMap),
	}, nil
}
