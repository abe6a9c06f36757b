package media

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// policy keeps a small set of formatting tags. Anchors may only carry http(s) links.
var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"b", "blockquote", "br", "code", "em", "i", "li",
		"ol", "p", "pre", "small", "span", "strong", "u", "ul",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)
	p.RequireNoReferrerOnLinks(true)
	return p
}()

// droppedTags have their whole content removed by PlainText, not just the tags.
var droppedTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Iframe:   true,
	atom.Object:   true,
	atom.Embed:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// Sanitize reduces untrusted markup to a small allow-list of formatting tags.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// PlainText strips all markup and returns the decoded text.
// Block tags become line breaks; blank lines are dropped.
func PlainText(s string) string {
	var b strings.Builder
	walk(s, func(tt xhtml.TokenType, tok xhtml.Token) {
		switch tt {
		case xhtml.TextToken:
			b.WriteString(tok.Data)
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken, xhtml.EndTagToken:
			switch tok.DataAtom {
			case atom.Br, atom.P, atom.Li, atom.Div:
				b.WriteString("\n")
			}
		}
	})

	lines := strings.Split(b.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// walk tokenizes s and reports every token outside dropped elements.
func walk(s string, fn func(xhtml.TokenType, xhtml.Token)) {
	z := xhtml.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		tt := z.Next()
		if tt == xhtml.ErrorToken {
			return
		}

		tok := z.Token()
		if droppedTags[tok.DataAtom] {
			switch tt {
			case xhtml.StartTagToken:
				skip++
			case xhtml.EndTagToken:
				if skip > 0 {
					skip--
				}
			}
			continue
		}

		if skip == 0 {
			fn(tt, tok)
		}
	}
}
