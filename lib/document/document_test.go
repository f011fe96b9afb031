package document

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"substack-archiver/lib/scrapers/substack"
)

func TestFrontmatterRender(t *testing.T) {
	fm := Frontmatter{
		Title:       `A "Quoted" Title`,
		Author:      "Jane Writer",
		Publication: "Test Pub",
		Date:        time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Url:         "https://testpub.substack.com/p/a-post",
		Subtitle:    "first line\nsecond line",
	}

	lines := strings.Split(fm.Render(), "\n")
	require.Equal(t, []string{
		"---",
		`title: "A \"Quoted\" Title"`,
		`author: "Jane Writer"`,
		`publication: "Test Pub"`,
		"date: 2024-05-01",
		"url: https://testpub.substack.com/p/a-post",
		`subtitle: "first line second line"`,
		"---",
	}, lines)
}

func TestFrontmatterOmitsEmptySubtitle(t *testing.T) {
	fm := Frontmatter{Title: "t", Author: "a", Publication: "p"}
	require.NotContains(t, fm.Render(), "subtitle:")
}

func TestFilenames(t *testing.T) {
	date := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	require.Equal(t, "2024-05-01-my-post.md", DocumentFilename(date, "my-post"))
	require.Equal(t, "2024-05-01-my-post-image-1.png", ImageFilename(date, "my-post", 0, "png"))
	require.Equal(t, "2024-05-01-my-post-image-2.jpg", ImageFilename(date, "my-post", 1, "jpg"))
}

func TestExtensionFromUrl(t *testing.T) {
	require.Equal(t, "png", ExtensionFromUrl("https://images.example/a/pic.png"))
	require.Equal(t, "jpeg", ExtensionFromUrl("https://images.example/pic.JPEG?width=640"))
	require.Equal(t, "jpg", ExtensionFromUrl("https://images.example/dynamic"))
	require.Equal(t, "jpg", ExtensionFromUrl("https://images.example/archive.tar.gz"))
}

func testPost() substack.RawPost {
	return substack.RawPost{
		Slug:        "a-fine-post",
		Title:       "A Fine Post",
		Subtitle:    "with a subtitle",
		Author:      "Jane Writer",
		PublishedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Url:         "https://testpub.substack.com/p/a-fine-post",
		BodyHtml: `<p>An intro referencing <a href="https://images.example/pic.png">the original</a>.</p>
<img src="https://images.example/pic.png" alt="a pic">`,
		Images: []substack.ImageRef{
			{RemoteUrl: "https://images.example/pic.png", Alt: "a pic"},
		},
	}
}

func TestProcess(t *testing.T) {
	conv := NewConverter()

	doc, err := conv.Process(testPost(), "Test Pub")
	require.NoError(t, err)

	require.Equal(t, "2024-05-01-a-fine-post.md", doc.Filename)
	require.Len(t, doc.Images, 1)
	require.Equal(t, "2024-05-01-a-fine-post-image-1.png", doc.Images[0].LocalName)

	require.True(t, strings.HasPrefix(doc.Markdown, "---\n"))
	require.Contains(t, doc.Markdown, "# A Fine Post")
	// every occurrence of the remote url is rewritten, links included
	require.NotContains(t, doc.Markdown, "https://images.example/pic.png")
	require.Contains(t, doc.Markdown, "./images/2024-05-01-a-fine-post-image-1.png")
}

func TestProcessIsDeterministic(t *testing.T) {
	conv := NewConverter()

	first, err := conv.Process(testPost(), "Test Pub")
	require.NoError(t, err)
	second, err := conv.Process(testPost(), "Test Pub")
	require.NoError(t, err)

	require.Equal(t, first.Markdown, second.Markdown)
	require.Equal(t, first.Filename, second.Filename)
}

func TestProcessAllSkipsNothingOnCleanInput(t *testing.T) {
	conv := NewConverter()
	docs := conv.ProcessAll([]substack.RawPost{testPost(), testPost()}, "Test Pub")
	require.Len(t, docs, 2)
}
