package substack

import (
	"bytes"
	"context"
	"fmt"
)

// VerifyCredential checks whether the configured session is actually
// honored by the listing api: the same request is made once with and
// once without the cookie, and byte-identical responses mean the
// session is being ignored (expired, or copied from the wrong origin).
// reported as a boolean so callers can warn and proceed optimistically.
func (c *Client) VerifyCredential(ctx context.Context, baseUrl string) (bool, error) {
	ctx, span := tracer.Start(ctx, "VerifyCredential")
	defer span.End()

	if c.credential.IsZero() {
		return false, fmt.Errorf("no credential configured")
	}

	probeUrl := c.credential.ApiOrigin(baseUrl, c.DefaultOrigin()) + archiveApiPath + "?limit=1"

	withCookie, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("Cookie", c.credential.CookieHeader()).
		Get(probeUrl)
	if err != nil {
		return false, err
	}

	withoutCookie, err := c.Http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(probeUrl)
	if err != nil {
		return false, err
	}

	if !withCookie.IsSuccess() || !withoutCookie.IsSuccess() {
		return false, fmt.Errorf(
			"verification probes failed: HTTP %d with cookie, HTTP %d without",
			withCookie.StatusCode(), withoutCookie.StatusCode(),
		)
	}

	return !bytes.Equal(withCookie.Body(), withoutCookie.Body()), nil
}
