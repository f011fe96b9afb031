package archive

import (
	"encoding/json"
	"time"

	"substack-archiver/lib/document"
	"substack-archiver/lib/scrapers/substack"
)

type metadataPost struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	Url      string `json:"url"`
	Filename string `json:"filename"`
	Images   int    `json:"images"`
}

type metadata struct {
	Publication substack.Publication `json:"publication"`
	Archive     struct {
		DownloadDate string         `json:"downloadDate"`
		TotalPosts   int            `json:"totalPosts"`
		TotalImages  int            `json:"totalImages"`
		Posts        []metadataPost `json:"posts"`
	} `json:"archive"`
}

func renderMetadata(
	publication substack.Publication,
	docs []document.Document,
	imageMap map[string][]byte,
) ([]byte, error) {
	var meta metadata
	meta.Publication = publication
	meta.Archive.DownloadDate = time.Now().Format(time.DateOnly)
	meta.Archive.TotalPosts = len(docs)
	meta.Archive.TotalImages = len(imageMap)
	meta.Archive.Posts = make([]metadataPost, 0, len(docs))
	for _, doc := range docs {
		meta.Archive.Posts = append(meta.Archive.Posts, metadataPost{
			Title:    doc.Frontmatter.Title,
			Author:   doc.Frontmatter.Author,
			Date:     doc.Frontmatter.Date.Format(time.DateOnly),
			Url:      doc.Frontmatter.Url,
			Filename: doc.Filename,
			Images:   len(doc.Images),
		})
	}
	return json.MarshalIndent(meta, "", "  ")
}
