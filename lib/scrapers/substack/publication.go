package substack

import (
	"bytes"
	"context"
	"strings"

	"substack-archiver/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// FetchPublication resolves the base endpoint and scrapes the
// publication's landing page for display metadata.
func (c *Client) FetchPublication(ctx context.Context) (Publication, error) {
	ctx, span := tracer.Start(ctx, "FetchPublication")
	defer span.End()

	baseUrl := c.ResolveBaseUrl(ctx)

	res, err := c.request(c.Http.R().SetContext(ctx)).Get(baseUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch publication landing page")
		return Publication{}, err
	}
	if !res.IsSuccess() {
		return Publication{}, &StatusError{StatusCode: res.StatusCode(), URL: baseUrl}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return Publication{}, err
	}

	name := htmlutil.Meta(doc, `meta[property="og:site_name"]`)
	if name == "" {
		title, _, _ := strings.Cut(doc.Find("title").First().Text(), "|")
		name = strings.TrimSpace(title)
	}
	if name == "" {
		name = c.Identifier
	}

	body := string(res.Body())
	hasPaid := strings.Contains(body, "subscription") ||
		strings.Contains(body, "subscribe") ||
		doc.Find(`[data-component-name="SubscribeWidget"]`).Length() > 0

	return Publication{
		Name:           name,
		Identifier:     c.Identifier,
		Description:    htmlutil.Meta(doc, `meta[property="og:description"]`, `meta[name="description"]`),
		Author:         htmlutil.Meta(doc, `meta[name="author"]`),
		Url:            c.DefaultOrigin(),
		BaseUrl:        baseUrl,
		HasPaidContent: hasPaid,
	}, nil
}
