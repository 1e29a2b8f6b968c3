package urinfo

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractTitle returns the sanitized text of the first <title> element. The second
// return value is false when the document has no title or only whitespace.
func extractTitle(body []byte) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return "", false
	}
	title := Sanitize(sel.Text())
	if strings.TrimSpace(title) == "" {
		return "", false
	}
	return title, true
}
