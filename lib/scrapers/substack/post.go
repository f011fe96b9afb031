package substack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"substack-archiver/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

type postPayload struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	BodyHtml     string `json:"body_html"`
	PostDate     string `json:"post_date"`
	CanonicalUrl string `json:"canonical_url"`
	Audience     string `json:"audience"`

	PublishedBylines []struct {
		Name string `json:"name"`
	} `json:"publishedBylines"`
	AuthorField struct {
		Name string `json:"name"`
	} `json:"author"`
}

func (p postPayload) toRawPost(slug string, ref PostReference) RawPost {
	title := p.Title
	if title == "" {
		title = "Untitled"
	}

	author := "Unknown"
	if len(p.PublishedBylines) > 0 && p.PublishedBylines[0].Name != "" {
		author = p.PublishedBylines[0].Name
	} else if p.AuthorField.Name != "" {
		author = p.AuthorField.Name
	}

	publishedAt := ref.PublishedAt
	if publishedAt.IsZero() {
		publishedAt, _ = time.Parse(time.RFC3339, p.PostDate)
	}

	link := p.CanonicalUrl
	if link == "" {
		link = ref.Url
	}

	return RawPost{
		Slug:        slug,
		Title:       title,
		Subtitle:    p.Subtitle,
		Author:      author,
		PublishedAt: publishedAt,
		Url:         link,
		BodyHtml:    p.BodyHtml,
		Images:      ExtractImages(p.BodyHtml),
		Paid:        p.Audience == "only_paid",
	}
}

// FetchPost retrieves the full content of a discovered post. the json
// api is tried first; scraping the rendered page covers posts the api
// won't serve, or serves truncated.
func (c *Client) FetchPost(ctx context.Context, ref PostReference) (RawPost, error) {
	ctx, span := tracer.Start(ctx, "FetchPost")
	defer span.End()
	span.SetAttributes(attribute.String("slug", ref.Slug), attribute.String("url", ref.Url))

	postUrl, err := url.Parse(ref.Url)
	if err != nil {
		return RawPost{}, err
	}
	slug := slugFromPostUrl(ref.Url)
	if slug == "" {
		span.AddEvent("no slug in post url, scraping the page directly")
		return c.scrapePostPage(ctx, ref)
	}

	postOrigin := fmt.Sprintf("%s://%s", postUrl.Scheme, postUrl.Host)
	apiOrigin := c.credential.ApiOrigin(postOrigin, c.DefaultOrigin())

	res, err := c.apiRequest(c.Http.R().SetContext(ctx)).Get(apiOrigin + postApiPath + slug)
	if err != nil || !res.IsSuccess() || !isJson(res) {
		return c.scrapePostPage(ctx, ref)
	}

	var payload postPayload
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		return c.scrapePostPage(ctx, ref)
	}
	post := payload.toRawPost(slug, ref)

	// the api still serves previews to readers it doesn't recognize as
	// subscribers. a suspiciously short paid body with a session present
	// usually means the full text is only on the rendered page.
	if post.Paid && len(post.BodyHtml) < paidPreviewThreshold && !c.credential.IsZero() {
		span.AddEvent("paid body looks truncated, trying the rendered page")
		scraped, err := c.scrapePostPage(ctx, ref)
		if err == nil && len(scraped.BodyHtml) > len(post.BodyHtml) {
			return scraped, nil
		}
	}

	return post, nil
}

// containers that can hold the post body depending on the page variant,
// in the order they are tried
var postBodySelectors = []string{
	".body.markup",
	".post-content",
	".available-content",
	".post-content-final",
	`[data-component-name="PostBody"]`,
}

func (c *Client) scrapePostPage(ctx context.Context, ref PostReference) (RawPost, error) {
	ctx, span := tracer.Start(ctx, "scrapePostPage")
	defer span.End()

	res, err := c.request(c.Http.R().SetContext(ctx)).Get(ref.Url)
	if err != nil {
		return RawPost{}, err
	}
	if res.StatusCode() == http.StatusUnauthorized || res.StatusCode() == http.StatusForbidden {
		return RawPost{}, fmt.Errorf("%w (HTTP %d)", ErrAuthenticationFailed, res.StatusCode())
	}
	if !res.IsSuccess() {
		return RawPost{}, &StatusError{StatusCode: res.StatusCode(), URL: ref.Url}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return RawPost{}, err
	}

	title := strings.TrimSpace(doc.Find("h1.post-title").First().Text())
	if title == "" {
		title = htmlutil.Meta(doc, `meta[property="og:title"]`)
	}
	if title == "" {
		title = "Untitled"
	}

	subtitle := strings.TrimSpace(doc.Find(".subtitle").First().Text())
	if subtitle == "" {
		subtitle = htmlutil.Meta(doc, `meta[property="og:description"]`)
	}

	author := htmlutil.Meta(doc, `meta[name="author"]`)
	if author == "" {
		author = strings.TrimSpace(doc.Find(".author-name").First().Text())
	}
	if author == "" {
		author = "Unknown"
	}

	// the archive listing date is authoritative when known
	publishedAt := ref.PublishedAt
	if publishedAt.IsZero() {
		raw := doc.Find("time").First().AttrOr("datetime", "")
		if raw == "" {
			raw = htmlutil.Meta(doc, `meta[property="article:published_time"]`)
		}
		if raw != "" {
			publishedAt, _ = time.Parse(time.RFC3339, raw)
		}
	}

	// several containers can hold the body; the one yielding the most
	// markup wins, a tie keeps the earlier selector
	var content string
	var contentSel *goquery.Selection
	for _, selector := range postBodySelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		inner, err := sel.Html()
		if err != nil {
			continue
		}
		if len(inner) > len(content) {
			content = inner
			contentSel = sel
		}
	}
	if content == "" {
		sel := doc.Find("article").First()
		if inner, err := sel.Html(); err == nil {
			content = inner
			contentSel = sel
		}
	}

	var images []ImageRef
	if contentSel != nil {
		images = extractImages(contentSel)
	}

	paid := strings.Contains(string(res.Body()), "paywall") ||
		doc.Find(".paywall").Length() > 0 ||
		doc.Find(".subscribe-widget").Length() > 0

	slug := slugFromPostUrl(ref.Url)
	if slug == "" {
		slug = Slugify(title)
	}

	return RawPost{
		Slug:        slug,
		Title:       title,
		Subtitle:    subtitle,
		Author:      author,
		PublishedAt: publishedAt,
		Url:         ref.Url,
		BodyHtml:    content,
		Images:      images,
		Paid:        paid,
	}, nil
}

// substackcdn "fetch" entries are resized duplicates of an original
// image that also appears in the document.
const cdnVariantMarker = "substackcdn.com/image/fetch/w_"

func extractImages(sel *goquery.Selection) []ImageRef {
	var images []ImageRef
	sel.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		if src == "" || strings.Contains(src, cdnVariantMarker) {
			return
		}
		images = append(images, ImageRef{
			RemoteUrl: src,
			Alt:       img.AttrOr("alt", ""),
		})
	})
	return images
}

// ExtractImages lists the archivable images referenced by a fragment of
// post markup.
func ExtractImages(markup string) []ImageRef {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}
	return extractImages(doc.Selection)
}
