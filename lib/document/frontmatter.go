package document

import (
	"fmt"
	"strings"
	"time"
)

// Frontmatter carries the metadata block emitted at the top of every
// archived document. key order is fixed.
type Frontmatter struct {
	Title       string
	Author      string
	Publication string
	Date        time.Time
	Url         string
	Subtitle    string
}

var frontmatterEscaper = strings.NewReplacer(`"`, `\"`, "\n", " ")

func (f Frontmatter) Render() string {
	lines := []string{
		"---",
		fmt.Sprintf(`title: "%s"`, frontmatterEscaper.Replace(f.Title)),
		fmt.Sprintf(`author: "%s"`, frontmatterEscaper.Replace(f.Author)),
		fmt.Sprintf(`publication: "%s"`, frontmatterEscaper.Replace(f.Publication)),
		fmt.Sprintf("date: %s", f.Date.Format(time.DateOnly)),
		fmt.Sprintf("url: %s", f.Url),
	}
	if f.Subtitle != "" {
		lines = append(lines, fmt.Sprintf(`subtitle: "%s"`, frontmatterEscaper.Replace(f.Subtitle)))
	}
	lines = append(lines, "---")
	return strings.Join(lines, "\n")
}
