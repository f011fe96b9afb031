package substack

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	// <subdomain>.substack.com or substack.com/@<username>
	substackUrlRegex = regexp.MustCompile(`^https?://(?:([a-zA-Z0-9-]+)\.substack\.com|substack\.com/@([a-zA-Z0-9_]+))/?(?:\?.*)?$`)
	bareIdentifier   = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

// ExtractIdentifier pulls the publication identifier out of whatever
// the caller pasted: a bare identifier, a subdomain or profile url on
// the default origin, or a custom domain url (the hostname without
// "www." becomes the identifier).
func ExtractIdentifier(input string) (string, error) {
	input = strings.TrimRight(strings.TrimSpace(input), "/")
	if input == "" {
		return "", fmt.Errorf("no publication given")
	}

	if bareIdentifier.MatchString(input) {
		return strings.ToLower(input), nil
	}

	if !strings.Contains(input, "://") {
		input = "https://" + input
	}
	if m := substackUrlRegex.FindStringSubmatch(input); m != nil {
		if m[1] != "" {
			return strings.ToLower(m[1]), nil
		}
		return strings.ToLower(m[2]), nil
	}

	parsed, err := url.Parse(input)
	if err != nil || parsed.Hostname() == "" {
		return "", fmt.Errorf("not a recognizable publication url: %q", input)
	}
	return strings.ToLower(strings.TrimPrefix(parsed.Hostname(), "www.")), nil
}
