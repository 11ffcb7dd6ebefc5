package docparse

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractHTMLText converts an HTML document to plain text, dropping script,
// style, and navigation chrome and keeping block structure as line breaks.
func ExtractHTMLText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, footer, iframe").Remove()

	var sb strings.Builder
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, td, div").Each(func(_ int, sel *goquery.Selection) {
		// Leaf blocks only, so nested containers don't duplicate text.
		if sel.Children().Filter("h1, h2, h3, h4, h5, h6, p, li, td, div").Length() > 0 {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	})

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		// Fall back to the whole body when the page uses uncommon markup.
		text = doc.Find("body").Text()
	}
	return CleanText(text), nil
}
