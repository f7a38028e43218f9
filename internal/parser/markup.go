package parser

import (
	"html"
	"regexp"
)

var markupTag = regexp.MustCompile(`<[^<>]*>`)

// PlainText returns the slide text with markup tags and entities resolved,
// or the raw text when markup is off
func (p *Point) PlainText() string {
	if !p.UseMarkup {
		return p.Text
	}
	return html.UnescapeString(markupTag.ReplaceAllString(p.Text, ""))
}
