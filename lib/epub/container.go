package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"

	"substack-archiver/lib/scrapers/substack"
)

const containerXml = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

func escapeXml(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

func chapterFilename(index int) string {
	return fmt.Sprintf("chapter-%03d.xhtml", index+1)
}

// writeContainer lays out the epub zip. The mimetype entry must come
// first and must be stored uncompressed, per the OCF spec.
func writeContainer(
	publication substack.Publication, chapters []chapter, now time.Time,
) ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	mimetype, err := writer.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return nil, err
	}
	if _, err := mimetype.Write([]byte("application/epub+zip")); err != nil {
		return nil, err
	}

	write := func(name, body string) error {
		entry, err := writer.Create(name)
		if err != nil {
			return err
		}
		_, err = entry.Write([]byte(body))
		return err
	}

	if err := write("META-INF/container.xml", containerXml); err != nil {
		return nil, err
	}
	if err := write("OEBPS/content.opf", renderOpf(publication, chapters, now)); err != nil {
		return nil, err
	}
	if err := write("OEBPS/nav.xhtml", renderNav(publication, chapters)); err != nil {
		return nil, err
	}
	for i, ch := range chapters {
		if err := write("OEBPS/"+chapterFilename(i), renderChapterXhtml(ch)); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderOpf(publication substack.Publication, chapters []chapter, now time.Time) string {
	var out strings.Builder
	out.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="pub-id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
`)
	fmt.Fprintf(&out, "    <dc:identifier id=\"pub-id\">urn:substack:%s</dc:identifier>\n",
		escapeXml(publication.Identifier))
	fmt.Fprintf(&out, "    <dc:title>%s</dc:title>\n", escapeXml(publication.Name))
	fmt.Fprintf(&out, "    <dc:creator>%s</dc:creator>\n", escapeXml(publication.Author))
	out.WriteString("    <dc:language>en</dc:language>\n")
	fmt.Fprintf(&out, "    <meta property=\"dcterms:modified\">%s</meta>\n",
		now.UTC().Format("2006-01-02T15:04:05Z"))
	out.WriteString("  </metadata>\n  <manifest>\n")
	out.WriteString(`    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav"/>` + "\n")
	for i := range chapters {
		fmt.Fprintf(&out,
			"    <item id=\"chapter-%03d\" href=\"%s\" media-type=\"application/xhtml+xml\"/>\n",
			i+1, chapterFilename(i))
	}
	out.WriteString("  </manifest>\n  <spine>\n")
	for i := range chapters {
		fmt.Fprintf(&out, "    <itemref idref=\"chapter-%03d\"/>\n", i+1)
	}
	out.WriteString("  </spine>\n</package>\n")
	return out.String()
}

func renderNav(publication substack.Publication, chapters []chapter) string {
	var out strings.Builder
	out.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head><title>` + escapeXml(publication.Name) + `</title></head>
<body>
  <nav epub:type="toc">
    <ol>
`)
	for i, ch := range chapters {
		fmt.Fprintf(&out, "      <li><a href=\"%s\">%s</a></li>\n",
			chapterFilename(i), escapeXml(ch.Title))
	}
	out.WriteString("    </ol>\n  </nav>\n</body>\n</html>\n")
	return out.String()
}

func renderChapterXhtml(ch chapter) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>%s</title></head>
<body>
<h1>%s</h1>
%s
</body>
</html>
`, escapeXml(ch.Title), escapeXml(ch.Title), ch.Body)
}
