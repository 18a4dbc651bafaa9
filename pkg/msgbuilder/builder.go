// Package msgbuilder composes Telegram-HTML messages from a sequence of
// formatted parts. The tag set is the small subset Telegram accepts: <b>, <i>,
// <code>, <a>.
package msgbuilder

import "strings"

const ellipsis = "..."

// Builder is an append-only message composer. All methods return the receiver
// for chaining; Build may be called repeatedly and never mutates state.
type Builder struct {
	parts      []string
	maxLength  int // 0 means unlimited
	escapeHTML bool
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{}
}

// WithHTMLEscape enables HTML-escaping of the text arguments passed to the
// formatted helpers (Bold, Italic, Code). Line, Raw, Link and the Section
// helpers insert their arguments verbatim.
func (b *Builder) WithHTMLEscape(escape bool) *Builder {
	b.escapeHTML = escape
	return b
}

// WithMaxLength caps the rendered message at max characters; when truncation
// happens the last three characters are an ellipsis.
func (b *Builder) WithMaxLength(max int) *Builder {
	b.maxLength = max
	return b
}

// Line appends a plain text line.
func (b *Builder) Line(text string) *Builder {
	b.parts = append(b.parts, text)
	return b
}

// Raw appends pre-formatted text verbatim, bypassing escaping.
func (b *Builder) Raw(text string) *Builder {
	b.parts = append(b.parts, text)
	return b
}

// Bold appends a bold line.
func (b *Builder) Bold(text string) *Builder {
	b.parts = append(b.parts, "<b>"+b.escapeIfNeeded(text)+"</b>")
	return b
}

// Italic appends an italic line.
func (b *Builder) Italic(text string) *Builder {
	b.parts = append(b.parts, "<i>"+b.escapeIfNeeded(text)+"</i>")
	return b
}

// Code appends an inline-code line.
func (b *Builder) Code(text string) *Builder {
	b.parts = append(b.parts, "<code>"+b.escapeIfNeeded(text)+"</code>")
	return b
}

// Link appends an anchor line. Both text and url are inserted verbatim.
func (b *Builder) Link(text, url string) *Builder {
	b.parts = append(b.parts, `<a href="`+url+`">`+text+`</a>`)
	return b
}

// EmptyLine appends a blank line.
func (b *Builder) EmptyLine() *Builder {
	b.parts = append(b.parts, "")
	return b
}

// Section appends "<b>title:</b> content".
func (b *Builder) Section(title, content string) *Builder {
	b.parts = append(b.parts, "<b>"+title+":</b> "+content)
	return b
}

// SectionBold appends "<b>title:</b> <b>content</b>".
func (b *Builder) SectionBold(title, content string) *Builder {
	b.parts = append(b.parts, "<b>"+title+":</b> <b>"+content+"</b>")
	return b
}

// SectionCode appends "<b>title:</b> <code>content</code>".
func (b *Builder) SectionCode(title, content string) *Builder {
	b.parts = append(b.parts, "<b>"+title+":</b> <code>"+content+"</code>")
	return b
}

// Build joins all parts with newlines in insertion order and applies the
// configured truncation.
func (b *Builder) Build() string {
	result := strings.Join(b.parts, "\n")

	if b.maxLength > 0 {
		runes := []rune(result)
		if len(runes) > b.maxLength {
			// Limits too small to fit the ellipsis cut hard at the cap.
			if b.maxLength <= len(ellipsis) {
				return string(runes[:b.maxLength])
			}
			result = string(runes[:b.maxLength-len(ellipsis)]) + ellipsis
		}
	}

	return result
}

func (b *Builder) escapeIfNeeded(text string) string {
	if b.escapeHTML {
		return EscapeHTML(text)
	}
	return text
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// EscapeHTML escapes the characters Telegram-HTML treats specially.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}
