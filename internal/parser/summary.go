package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips the HTML markup TVMaze uses in show summaries and collapses whitespace.
// Paragraph and line breaks become single spaces.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}

	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		p.AppendHtml(" ")
	})

	return strings.Join(strings.Fields(doc.Text()), " ")
}
