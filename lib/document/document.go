package document

import (
	"strings"

	"substack-archiver/lib/scrapers/substack"
)

// Document is an archived post ready for assembly: a generated
// filename, the final markdown text, and the post's image references
// with their assigned local names.
type Document struct {
	Filename    string
	Markdown    string
	Images      []substack.ImageRef
	Frontmatter Frontmatter
}

// Process converts one fetched post into its archived document. the
// transformation is pure and deterministic: processing the same post
// twice yields byte-identical output.
func (c *Converter) Process(post substack.RawPost, publicationName string) (Document, error) {
	markdown, err := c.md.ConvertString(post.BodyHtml)
	if err != nil {
		return Document{}, err
	}

	images := make([]substack.ImageRef, len(post.Images))
	for i, img := range post.Images {
		img.LocalName = ImageFilename(
			post.PublishedAt, post.Slug, i,
			ExtensionFromUrl(img.RemoteUrl),
		)
		// the remote url may appear outside the image reference itself
		// (e.g. a caption linking to the full-size original), so the
		// rewrite is textual over the whole body
		markdown = strings.ReplaceAll(markdown, img.RemoteUrl, "./images/"+img.LocalName)
		images[i] = img
	}

	fm := Frontmatter{
		Title:       post.Title,
		Author:      post.Author,
		Publication: publicationName,
		Date:        post.PublishedAt,
		Url:         post.Url,
		Subtitle:    post.Subtitle,
	}

	return Document{
		Filename:    DocumentFilename(post.PublishedAt, post.Slug),
		Markdown:    fm.Render() + "\n\n# " + post.Title + "\n\n" + markdown,
		Images:      images,
		Frontmatter: fm,
	}, nil
}

// ProcessAll converts every post in order. a post whose markup defeats
// the converter is dropped, matching the pipeline's per-item failure
// policy.
func (c *Converter) ProcessAll(posts []substack.RawPost, publicationName string) []Document {
	docs := make([]Document, 0, len(posts))
	for _, post := range posts {
		doc, err := c.Process(post, publicationName)
		if err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}
