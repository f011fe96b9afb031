package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertBasicMarkup(t *testing.T) {
	conv := NewConverter()

	got, err := conv.md.ConvertString(`<h2>Heading</h2>
<p>Some <strong>bold</strong> and <em>italic</em> text with a
<a href="https://example.com">link</a>.</p>
<ul><li>one</li><li>two</li></ul>`)
	require.NoError(t, err)

	require.Contains(t, got, "## Heading")
	require.Contains(t, got, "**bold**")
	require.Contains(t, got, "*italic*")
	require.Contains(t, got, "[link](https://example.com)")
	require.Contains(t, got, "- one")
	require.Contains(t, got, "- two")
}

func TestConvertFigureUsesAltOverCaption(t *testing.T) {
	conv := NewConverter()

	got, err := conv.md.ConvertString(`<figure>
<img src="https://images.example/pic.png" alt="the alt text">
<figcaption>the caption</figcaption>
</figure>`)
	require.NoError(t, err)
	require.Contains(t, got, "![the alt text](https://images.example/pic.png)")

	got, err = conv.md.ConvertString(`<figure>
<img src="https://images.example/pic.png">
<figcaption>the caption</figcaption>
</figure>`)
	require.NoError(t, err)
	require.Contains(t, got, "![the caption](https://images.example/pic.png)")
}

func TestConvertEmbeds(t *testing.T) {
	conv := NewConverter()

	got, err := conv.md.ConvertString(
		`<div class="tweet"><a href="https://twitter.com/x/status/1">a tweet</a></div>`)
	require.NoError(t, err)
	require.Contains(t, got, "[a tweet](https://twitter.com/x/status/1)")

	got, err = conv.md.ConvertString(`<div class="youtube"></div>`)
	require.NoError(t, err)
	require.Contains(t, got, "[Embedded content]")

	// a div without an embed class falls through to normal handling
	got, err = conv.md.ConvertString(`<div class="pullquote">just text</div>`)
	require.NoError(t, err)
	require.Contains(t, got, "just text")
	require.NotContains(t, got, "Embedded content")
}

func TestConvertBlockquoteMarksEveryLine(t *testing.T) {
	conv := NewConverter()

	got, err := conv.md.ConvertString(
		`<blockquote><p>first line</p><p>second line</p></blockquote>`)
	require.NoError(t, err)

	quoted := 0
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "> ") {
			quoted++
		}
	}
	require.GreaterOrEqual(t, quoted, 2)
}

func TestConvertFencedCodeBlock(t *testing.T) {
	conv := NewConverter()

	got, err := conv.md.ConvertString(
		`<pre><code class="language-go">fmt.Println("hi")</code></pre>`)
	require.NoError(t, err)
	require.Contains(t, got, "```go")
	require.Contains(t, got, `fmt.Println("hi")`)
}
