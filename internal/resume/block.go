// Package resume turns portfolio data into an ordered list of styled blocks.
//
// The block list is what a renderer paginates; it has no notion of fonts or
// page geometry beyond the style tag each block carries.
package resume

import (
	"encoding/json"
	"html"
	"strings"
)

// Kind identifies the role of a block in the document
type Kind int

const (
	Title Kind = iota
	SubHeading
	SectionHeading
	BodyText
	LinkLine
	BulletLine
	Spacer
)

var kindNames = [...]string{
	Title:          "title",
	SubHeading:     "subheading",
	SectionHeading: "section_heading",
	BodyText:       "body",
	LinkLine:       "link_line",
	BulletLine:     "bullet",
	Spacer:         "spacer",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Style names an entry in the renderer's style table
type Style string

const (
	StyleTitle      Style = "title"
	StyleSubtitle   Style = "subtitle"
	StyleHeading    Style = "heading"
	StyleSubHeading Style = "subheading"
	StyleBody       Style = "body"
)

// Run is a span of text sharing one weight. A Break run ends the current line.
type Run struct {
	Text  string
	Bold  bool
	Break bool
}

// Block is one styled unit of content
type Block struct {
	Kind  Kind
	Style Style
	Runs  []Run

	// Height is the vertical gap in points, used by Spacer blocks only
	Height float64
}

// Text returns the block content without markup. Breaks become newlines.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		if r.Break {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Markup returns the content with inline <b> and <br/> tags; text is escaped
func (b Block) Markup() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		switch {
		case r.Break:
			sb.WriteString("<br/>")
		case r.Bold:
			sb.WriteString("<b>")
			sb.WriteString(html.EscapeString(r.Text))
			sb.WriteString("</b>")
		default:
			sb.WriteString(html.EscapeString(r.Text))
		}
	}
	return sb.String()
}

// MarshalJSON encodes the block for previews
func (b Block) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind   string  `json:"kind"`
		Style  Style   `json:"style,omitempty"`
		Text   string  `json:"text,omitempty"`
		Markup string  `json:"markup,omitempty"`
		Height float64 `json:"height,omitempty"`
	}{
		Kind:   b.Kind.String(),
		Style:  b.Style,
		Text:   b.Text(),
		Markup: b.Markup(),
		Height: b.Height,
	}
	return json.Marshal(out)
}

// Document is the assembled resume
type Document struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Blocks []Block `json:"blocks"`
}

// Find returns the first block whose plain text equals text
func (d Document) Find(text string) (Block, bool) {
	for _, b := range d.Blocks {
		if b.Text() == text {
			return b, true
		}
	}
	return Block{}, false
}

func plain(text string) []Run {
	return []Run{{Text: text}}
}

func bold(text string) []Run {
	return []Run{{Text: text, Bold: true}}
}
