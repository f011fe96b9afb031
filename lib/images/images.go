// Package images retrieves the remote images referenced by archived
// documents, keyed by the local filename each document assigned.
package images

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"substack-archiver/lib/document"
	"substack-archiver/lib/telemetry"
)

var tracer = otel.Tracer("lib/images")

// DefaultWorkers is how many downloads run at once when the caller
// does not say otherwise.
const DefaultWorkers = 5

// ProgressFunc receives download progress. postIndex is 1-based and
// identifies the document the finished image belonged to.
type ProgressFunc func(postIndex, totalPosts int, progress string)

type Retriever struct {
	http    *resty.Client
	workers int
}

func NewRetriever(userAgent string, workers int) *Retriever {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(client, "images/http")
	return &Retriever{http: client, workers: workers}
}

type job struct {
	postIndex int
	url       string
	localName string
}

// Retrieve downloads every image referenced by docs and returns the
// payloads keyed by local filename. Failed downloads are logged and
// omitted; the map never contains partial bodies.
func (r *Retriever) Retrieve(
	ctx context.Context, docs []document.Document, onProgress ProgressFunc,
) map[string][]byte {
	ctx, span := tracer.Start(ctx, "Retrieve")
	defer span.End()

	var jobs []job
	for i, doc := range docs {
		for _, img := range doc.Images {
			jobs = append(jobs, job{
				postIndex: i + 1,
				url:       img.RemoteUrl,
				localName: img.LocalName,
			})
		}
	}
	if len(jobs) == 0 {
		return map[string][]byte{}
	}

	var (
		mutex  sync.Mutex
		result = make(map[string][]byte, len(jobs))
		done   = 0
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(min(r.workers, len(jobs)))
	for _, j := range jobs {
		j := j
		group.Go(func() error {
			res, err := r.http.R().SetContext(groupCtx).Get(j.url)
			body := []byte(nil)
			if err != nil {
				slog.WarnContext(groupCtx, "failed to download image",
					"url", j.url, "err", err)
			} else if res.StatusCode() < 200 || res.StatusCode() > 299 {
				slog.WarnContext(groupCtx, "failed to download image",
					"url", j.url, "status", res.StatusCode())
			} else {
				body = res.Body()
			}

			mutex.Lock()
			defer mutex.Unlock()
			if body != nil {
				result[j.localName] = body
			}
			done++
			if onProgress != nil {
				onProgress(j.postIndex, len(docs), fmt.Sprintf("%d/%d", done, len(jobs)))
			}
			return nil
		})
	}
	_ = group.Wait()

	return result
}
