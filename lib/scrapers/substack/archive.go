package substack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"substack-archiver/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

type archiveItem struct {
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	CanonicalUrl string `json:"canonical_url"`
	PostDate     string `json:"post_date"`
	Audience     string `json:"audience"`
	IsPaid       bool   `json:"is_paid"`
}

func (item archiveItem) toReference(baseUrl string) PostReference {
	link := item.CanonicalUrl
	if link == "" {
		link = fmt.Sprintf("%s/p/%s", baseUrl, item.Slug)
	}
	publishedAt, _ := time.Parse(time.RFC3339, item.PostDate)
	return PostReference{
		Slug:        item.Slug,
		Title:       item.Title,
		Url:         link,
		PublishedAt: publishedAt,
		Paid:        item.Audience == "only_paid" || item.IsPaid,
	}
}

// ListArchive enumerates the publication's posts, newest first. the
// json listing api is paged by a fixed offset; when the very first page
// fails or serves html instead of json, the whole listing falls back to
// scraping the human-facing archive page. mid-pagination failures keep
// whatever was collected so far.
func (c *Client) ListArchive(ctx context.Context, baseUrl string) ([]PostReference, error) {
	ctx, span := tracer.Start(ctx, "ListArchive")
	defer span.End()

	var refs []PostReference
	for offset := 0; ; offset += archivePageSize {
		listUrl := fmt.Sprintf(
			"%s%s?sort=new&search=&offset=%d&limit=%d",
			baseUrl, archiveApiPath, offset, archivePageSize,
		)

		res, err := c.apiRequest(c.Http.R().SetContext(ctx)).Get(listUrl)
		if err != nil || !res.IsSuccess() || !isJson(res) {
			if offset == 0 {
				span.AddEvent("listing api unusable, scraping the archive page")
				return c.scrapeArchivePage(ctx, baseUrl)
			}
			break
		}

		var page []archiveItem
		if err := json.Unmarshal(res.Body(), &page); err != nil {
			if offset == 0 {
				return c.scrapeArchivePage(ctx, baseUrl)
			}
			break
		}
		if len(page) == 0 {
			break
		}

		for _, item := range page {
			refs = append(refs, item.toReference(baseUrl))
		}
		if len(page) < archivePageSize {
			break
		}
	}

	span.SetAttributes(attribute.Int("posts", len(refs)))
	return refs, nil
}

var archivePreviewSelector = `a[data-testid="post-preview-title"]`

// scrapeArchivePage recovers a post listing from the rendered archive
// page. entries found this way carry no machine readable publish date;
// the date stays zero and is filled in from the post page during the
// content fetch.
func (c *Client) scrapeArchivePage(ctx context.Context, baseUrl string) ([]PostReference, error) {
	ctx, span := tracer.Start(ctx, "scrapeArchivePage")
	defer span.End()

	pageUrl := baseUrl + archivePagePath
	res, err := c.request(c.Http.R().SetContext(ctx)).Get(pageUrl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoArchive, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("%w: %v", ErrNoArchive, &StatusError{StatusCode: res.StatusCode(), URL: pageUrl})
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoArchive, err)
	}

	anchors := htmlutil.GetAnchors(ctx, doc.Find(archivePreviewSelector))
	if len(anchors) == 0 {
		// older page structure: preview containers whose first anchor
		// is the post link
		doc.Find(".post-preview").Each(func(_ int, s *goquery.Selection) {
			link := s.Find("a").First()
			anchors = append(anchors, htmlutil.Anchor{
				Name: htmlutil.CleanText(link.Text()),
				Href: link.AttrOr("href", ""),
			})
		})
	}

	var refs []PostReference
	for _, a := range anchors {
		if a.Href == "" || a.Name == "" {
			continue
		}
		link := a.Href
		if !strings.HasPrefix(link, "http") {
			link = baseUrl + link
		}
		slug := slugFromPostUrl(link)
		if slug == "" {
			slug = Slugify(a.Name)
		}
		refs = append(refs, PostReference{
			Slug:  slug,
			Title: a.Name,
			Url:   link,
		})
	}

	span.SetAttributes(attribute.Int("posts", len(refs)))
	return refs, nil
}
