package planner

import (
	"strings"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// ExcerptFromHTML derives a plain-text excerpt from HTML content,
// collapsing whitespace and cutting at the last word boundary before
// maxLen.
func ExcerptFromHTML(html string, maxLen int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if len(text) <= maxLen {
		return text
	}

	end := maxLen
	for end > 0 && !utf8.RuneStart(text[end]) {
		end--
	}

	cut := text[:end]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}

// MarkdownFromHTML converts article HTML to markdown for preview
func MarkdownFromHTML(html string) (string, error) {
	converter := md.NewConverter("", true, nil)
	return converter.ConvertString(html)
}
