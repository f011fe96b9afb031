package substack

import (
	"net/url"
	"strings"
)

type CredentialKind int

const (
	CredentialNone CredentialKind = iota
	// session issued by the publication's own custom domain
	// (carries a connect.sid value)
	CredentialCustomDomain
	// session issued by the default origin (carries substack.sid)
	CredentialDefaultOrigin
)

// Credential is an opaque reader session, classified by which named
// session value it carries. the two kinds are not interchangeable: a
// custom-domain session is only honored by the publication's own host
// and a default-origin session only by <identifier>.substack.com.
type Credential struct {
	value string
	kind  CredentialKind
}

// ParseCredential classifies a raw cookie string. values copied out of
// browser devtools are often percent-encoded ("s%3Axxx"), so the string
// is decoded once up front; a value that fails to decode is kept as is.
// PathUnescape rather than QueryUnescape: cookie signatures are base64
// and a literal + must stay a +, not become a space.
func ParseCredential(raw string) Credential {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Credential{}
	}
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}

	kind := CredentialDefaultOrigin
	if strings.Contains(raw, "connect.sid=") {
		kind = CredentialCustomDomain
	}
	return Credential{value: raw, kind: kind}
}

func (c Credential) IsZero() bool {
	return c.value == ""
}

func (c Credential) Kind() CredentialKind {
	return c.kind
}

func (c Credential) CookieHeader() string {
	return c.value
}

// ApiOrigin selects the origin authenticated api calls should target.
func (c Credential) ApiOrigin(postOrigin, defaultOrigin string) string {
	if c.kind == CredentialDefaultOrigin {
		return defaultOrigin
	}
	return postOrigin
}
