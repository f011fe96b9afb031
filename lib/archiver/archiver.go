// Package archiver orchestrates a full publication archival run:
// resolve, discover, fetch, transform, retrieve images, assemble.
package archiver

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"substack-archiver/lib/archive"
	"substack-archiver/lib/document"
	"substack-archiver/lib/epub"
	"substack-archiver/lib/images"
	"substack-archiver/lib/scrapers/substack"
)

var tracer = otel.Tracer("lib/archiver")

// PostProgressFunc reports per-post progress through a fetch pass.
type PostProgressFunc func(index, total int, title string)

type Archiver struct {
	opts      Options
	client    *substack.Client
	converter *document.Converter
	retriever *images.Retriever
}

func New(opts Options) (*Archiver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	client, err := substack.NewClient(substack.ClientOptions{
		Identifier:         opts.Identifier,
		Credential:         opts.Credential,
		UserAgent:          opts.UserAgent,
		MinRequestInterval: opts.MinRequestInterval,
		DefaultOrigin:      opts.DefaultOrigin,
	})
	if err != nil {
		return nil, err
	}

	return &Archiver{
		opts:      opts,
		client:    client,
		converter: document.NewConverter(),
		retriever: images.NewRetriever(opts.UserAgent, opts.ImageWorkers),
	}, nil
}

// ResolvePublication resolves the publication's real origin and
// scrapes its landing page metadata.
func (a *Archiver) ResolvePublication(ctx context.Context) (substack.Publication, error) {
	ctx, span := tracer.Start(ctx, "ResolvePublication")
	defer span.End()

	publication, err := a.client.FetchPublication(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return substack.Publication{}, err
	}
	return publication, nil
}

// DiscoverPosts enumerates the archive listing, filtered to dateRange
// when one is given. An empty result is not an error here; Run treats
// it as one.
func (a *Archiver) DiscoverPosts(
	ctx context.Context, baseUrl string, dateRange substack.DateRange,
) ([]substack.PostReference, error) {
	ctx, span := tracer.Start(ctx, "DiscoverPosts")
	defer span.End()

	if err := dateRange.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	refs, err := a.client.ListArchive(ctx, baseUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return substack.FilterByDate(refs, dateRange), nil
}

// FetchAllPosts fetches every referenced post in order. A credential
// that fails verification is reported and kept; posts that fail to
// fetch are logged and skipped.
func (a *Archiver) FetchAllPosts(
	ctx context.Context,
	baseUrl string,
	refs []substack.PostReference,
	onProgress PostProgressFunc,
) []substack.RawPost {
	ctx, span := tracer.Start(ctx, "FetchAllPosts")
	defer span.End()

	if !a.client.Credential().IsZero() {
		ok, err := a.client.VerifyCredential(ctx, baseUrl)
		if err != nil {
			slog.WarnContext(ctx, "could not verify credential", "err", err)
		} else if !ok {
			slog.WarnContext(ctx, "credential appears to have no effect, paid posts may be truncated")
		}
	}

	posts := make([]substack.RawPost, 0, len(refs))
	for i, ref := range refs {
		if onProgress != nil {
			onProgress(i+1, len(refs), ref.Title)
		}
		post, err := a.client.FetchPost(ctx, ref)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch post",
				"slug", ref.Slug, "err", err)
			continue
		}
		posts = append(posts, post)
	}
	return posts
}

// VerifyCredential reports whether the session cookie actually
// changes what the publication serves.
func (a *Archiver) VerifyCredential(ctx context.Context, baseUrl string) (bool, error) {
	return a.client.VerifyCredential(ctx, baseUrl)
}

// Transform converts fetched posts into archive documents.
func (a *Archiver) Transform(posts []substack.RawPost, publicationName string) []document.Document {
	return a.converter.ProcessAll(posts, publicationName)
}

// RetrieveImages downloads every image the documents reference.
func (a *Archiver) RetrieveImages(
	ctx context.Context, docs []document.Document, onProgress images.ProgressFunc,
) map[string][]byte {
	return a.retriever.Retrieve(ctx, docs, onProgress)
}

// AssembleBundle builds the zip archive.
func (a *Archiver) AssembleBundle(
	ctx context.Context,
	publication substack.Publication,
	docs []document.Document,
	imageMap map[string][]byte,
) ([]byte, error) {
	return archive.BuildZip(ctx, publication, docs, imageMap)
}

// AssembleEbook builds the epub.
func (a *Archiver) AssembleEbook(
	ctx context.Context,
	publication substack.Publication,
	docs []document.Document,
	imageMap map[string][]byte,
) ([]byte, error) {
	return epub.Build(ctx, publication, docs, imageMap)
}
