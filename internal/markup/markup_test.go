package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHeading(t *testing.T) {
	got := Render("**Why it matters**")
	assert.Equal(t, "<h3>Why it matters</h3>\n", got)
}

func TestRenderPlainParagraph(t *testing.T) {
	got := Render("Just a paragraph of text.")
	assert.Equal(t, "<p>Just a paragraph of text.</p>\n", got)
}

func TestRenderInlineEmphasis(t *testing.T) {
	got := Render("Skills **compound** over time.")
	assert.Equal(t, "<p>Skills <strong>compound</strong> over time.</p>\n", got)
}

func TestRenderMixedDocument(t *testing.T) {
	content := "**Getting Started**\n\nFirst, build a **strong** resume.\n\n1. Research the company\n\nGood luck!"
	got := Render(content)
	assert.Equal(t,
		"<h3>Getting Started</h3>\n<p>First, build a <strong>strong</strong> resume.</p>\n<p>1. Research the company</p>\n<p>Good luck!</p>\n",
		got)
}

func TestRenderUnbalancedMarker(t *testing.T) {
	got := Render("A dangling **marker here")
	assert.Equal(t, "<p>A dangling **marker here</p>\n", got)
}

func TestRenderStripsHTML(t *testing.T) {
	got := Render("Click <script>alert(1)</script> here.")
	assert.NotContains(t, got, "<script>")
	assert.NotContains(t, got, "alert(1)</script>")
}

func TestRenderSkipsEmptyParagraphs(t *testing.T) {
	got := Render("One.\n\n\n\nTwo.")
	assert.Equal(t, "<p>One.</p>\n<p>Two.</p>\n", got)
}
