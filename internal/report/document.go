// Package report assembles four-field documents (style, header, content,
// footer) in plain text, HTML or XML.
//
// A Builder wraps each raw field in format-specific markup before storing it
// on its Document. The Director drives any Builder through the same fixed
// sequence, so adding a format only means adding an entry to the markup table.
package report

import (
	"fmt"
	"io"
)

// Document is the assembled output of a Builder. Fields hold the already
// wrapped text and may be edited after assembly.
type Document struct {
	Style   string
	Header  string
	Content string
	Footer  string
}

// UpdateContent replaces the content field, leaving the other fields as
// they are. It does not re-run the builder, so the new text is stored as
// given, without markup.
func (d *Document) UpdateContent(content string) {
	d.Content = content
}

// Lines returns the fields in display order: style, header, content, footer.
func (d *Document) Lines() [4]string {
	return [4]string{d.Style, d.Header, d.Content, d.Footer}
}

// Render writes the fields to w in display order, one per line.
func (d *Document) Render(w io.Writer) error {
	for _, line := range d.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("rendering document: %w", err)
		}
	}
	return nil
}

// Clone returns a copy of the document.
func (d *Document) Clone() *Document {
	c := *d
	return &c
}
