package substack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title  string
		expect string
	}{
		{"Hello World", "hello-world"},
		{"What's Next? (Part 2)", "whats-next-part-2"},
		{"  spaced   out  ", "spaced-out"},
		{"already-hyphen-ated", "already-hyphen-ated"},
		{"---", ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, Slugify(test.title), "%q", test.title)
	}
}

func TestSlugFromPostUrl(t *testing.T) {
	require.Equal(t, "my-post",
		slugFromPostUrl("https://example.substack.com/p/my-post"))
	require.Equal(t, "my-post",
		slugFromPostUrl("https://example.substack.com/p/my-post?utm_source=feed"))
	require.Equal(t, "my-post",
		slugFromPostUrl("https://example.substack.com/p/my-post/"))
	require.Equal(t, "", slugFromPostUrl("https://example.substack.com/about"))
}
