package substack

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

type resolveCandidate struct {
	name  string
	probe func(ctx context.Context) (string, bool)
}

// ResolveBaseUrl determines the origin that actually serves the
// publication's api and pages. publications that moved to a custom
// domain redirect their default origin to a profile page on the root
// domain; in that case the candidate origins are tried in order until
// one serves json from its listing api. every failure along the way
// fails open to the unmodified default origin.
func (c *Client) ResolveBaseUrl(ctx context.Context) string {
	ctx, span := tracer.Start(ctx, "ResolveBaseUrl")
	defer span.End()

	defaultOrigin := c.DefaultOrigin()

	res, err := c.request(c.Http.R().SetContext(ctx)).Get(defaultOrigin)
	if err != nil {
		span.RecordError(err)
		return defaultOrigin
	}

	final := res.RawResponse.Request.URL
	if !c.isProfilePage(final) {
		return fmt.Sprintf("%s://%s", final.Scheme, final.Host)
	}

	// landed on an author profile instead of the publication itself
	profileOrigin := fmt.Sprintf("%s://%s", final.Scheme, final.Host)
	profileBody := string(res.Body())

	candidates := []resolveCandidate{
		{
			name: "custom-domain",
			probe: func(ctx context.Context) (string, bool) {
				origin, found := findCustomDomain(profileBody, c.Identifier)
				if !found {
					return "", false
				}
				return origin, c.probeListing(ctx, origin)
			},
		},
		{
			name: "default-origin",
			probe: func(ctx context.Context) (string, bool) {
				return defaultOrigin, c.probeListing(ctx, defaultOrigin)
			},
		},
	}

	for _, cand := range candidates {
		origin, ok := cand.probe(ctx)
		if !ok {
			continue
		}
		span.SetAttributes(
			attribute.String("strategy", cand.name),
			attribute.String("origin", origin),
		)
		return origin
	}

	// keeps discovery pointed at something real so the eventual failure
	// reads as a fetch error rather than a dead default origin
	span.SetAttributes(attribute.String("strategy", "profile-page"))
	return profileOrigin
}

// profile pages live at /@<username> on the root substack domain, not
// on any publication's own host. when the default origin is overridden
// that host stands in for the root domain as well.
func (c *Client) isProfilePage(u *url.URL) bool {
	if !strings.HasPrefix(u.Path, "/@") {
		return false
	}
	if c.defaultOrigin != "" {
		override, err := url.Parse(c.defaultOrigin)
		return err == nil && u.Host == override.Host
	}
	return u.Hostname() == "substack.com"
}

// findCustomDomain searches a profile page body for a linked domain
// containing the identifier as a substring, e.g. identifier
// "compoundingquality" matching "compoundingquality.net".
func findCustomDomain(body, identifier string) (string, bool) {
	re := regexp.MustCompile(
		`(?i)https?://(www\.)?([a-zA-Z0-9-]*` + regexp.QuoteMeta(identifier) + `[a-zA-Z0-9-]*\.[a-z]{2,})`,
	)
	m := re.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return "https://" + m[1] + m[2], true
}

// probeListing reports whether the origin's listing api produces json.
func (c *Client) probeListing(ctx context.Context, origin string) bool {
	res, err := c.apiRequest(c.Http.R().SetContext(ctx)).Get(origin + archiveApiPath + "?limit=1")
	if err != nil {
		return false
	}
	return res.IsSuccess() && isJson(res)
}
