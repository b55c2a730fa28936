package report

import (
	"sort"
	"strings"

	"github.com/conneroisu/patterns/internal/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format identifies a document markup.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatXML  Format = "xml"
)

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// Heading returns the upper-cased label used when a document is displayed,
// e.g. "HTML".
func (f Format) Heading() string {
	return cases.Upper(language.English).String(string(f))
}

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := markups[f]; !ok {
		return "", errors.ErrUnknownFormat(name).
			WithContext("supported", strings.Join(formatNames(), ", "))
	}
	return f, nil
}

// Formats lists every supported format in a stable order.
func Formats() []Format {
	names := formatNames()
	out := make([]Format, len(names))
	for i, n := range names {
		out[i] = Format(n)
	}
	return out
}

func formatNames() []string {
	names := make([]string, 0, len(markups))
	for f := range markups {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// markup holds the wrap function applied to each field for one format.
type markup struct {
	style   func(string) string
	header  func(string) string
	content func(string) string
	footer  func(string) string
}

func identity(s string) string { return s }

func prefix(p string) func(string) string {
	return func(s string) string { return p + s }
}

func tag(name string) func(string) string {
	return func(s string) string { return "<" + name + ">" + s + "</" + name + ">" }
}

var markups = map[Format]markup{
	FormatText: {
		style:   identity,
		header:  prefix("TEXT HEADER: "),
		content: identity,
		footer:  prefix("END: "),
	},
	FormatHTML: {
		style:   tag("style"),
		header:  tag("h1"),
		content: tag("p"),
		footer:  tag("footer"),
	},
	FormatXML: {
		style:   tag("style"),
		header:  tag("header"),
		content: tag("content"),
		footer:  tag("footer"),
	},
}

// Builder populates a Document one field at a time. Each setter overwrites
// only its own field.
type Builder interface {
	SetStyle(style string)
	SetHeader(header string)
	SetContent(content string)
	SetFooter(footer string)
	Document() *Document
	Format() Format
}

// builder is the single Builder implementation, parameterized by markup.
type builder struct {
	format Format
	markup markup
	doc    *Document
}

// NewBuilder returns a builder for format.
func NewBuilder(format Format) (Builder, error) {
	m, ok := markups[format]
	if !ok {
		return nil, errors.ErrUnknownFormat(string(format))
	}
	return &builder{format: format, markup: m, doc: &Document{}}, nil
}

// NewTextBuilder returns the plain-text builder.
func NewTextBuilder() Builder { return mustBuilder(FormatText) }

// NewHTMLBuilder returns the HTML builder.
func NewHTMLBuilder() Builder { return mustBuilder(FormatHTML) }

// NewXMLBuilder returns the XML builder.
func NewXMLBuilder() Builder { return mustBuilder(FormatXML) }

func mustBuilder(f Format) Builder {
	b, err := NewBuilder(f)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *builder) SetStyle(style string)     { b.doc.Style = b.markup.style(style) }
func (b *builder) SetHeader(header string)   { b.doc.Header = b.markup.header(header) }
func (b *builder) SetContent(content string) { b.doc.Content = b.markup.content(content) }
func (b *builder) SetFooter(footer string)   { b.doc.Footer = b.markup.footer(footer) }

// Document returns the document being built. Later setter calls keep
// modifying the same document.
func (b *builder) Document() *Document { return b.doc }

// Format reports which markup the builder applies.
func (b *builder) Format() Format { return b.format }
