// Package markup renders the lightweight blog content convention to HTML:
// paragraphs are separated by blank lines, a paragraph fully wrapped in
// double-asterisks is a heading, and inline double-asterisks mark emphasis.
package markup

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h3", "p", "strong")
	return p
}()

// Render converts blog post content to sanitized HTML.
func Render(content string) string {
	var b strings.Builder

	for _, para := range strings.Split(content, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if isHeading(para) {
			b.WriteString("<h3>")
			b.WriteString(html.EscapeString(strings.TrimSpace(para[2 : len(para)-2])))
			b.WriteString("</h3>\n")
			continue
		}

		b.WriteString("<p>")
		writeInline(&b, para)
		b.WriteString("</p>\n")
	}

	return policy.Sanitize(b.String())
}

// isHeading reports whether the whole paragraph is wrapped in a single
// double-asterisk pair.
func isHeading(para string) bool {
	if len(para) < 5 || !strings.HasPrefix(para, "**") || !strings.HasSuffix(para, "**") {
		return false
	}
	return !strings.Contains(para[2:len(para)-2], "**")
}

// writeInline emits paragraph text, turning **…** spans into <strong>.
// An unbalanced trailing marker is left as literal text.
func writeInline(b *strings.Builder, para string) {
	parts := strings.Split(para, "**")
	for i, part := range parts {
		if i%2 == 1 && i < len(parts)-1 {
			b.WriteString("<strong>")
			b.WriteString(html.EscapeString(part))
			b.WriteString("</strong>")
			continue
		}
		if i%2 == 1 {
			// Odd number of markers: restore the literal asterisks.
			b.WriteString(html.EscapeString("**" + part))
			continue
		}
		b.WriteString(html.EscapeString(part))
	}
}
