package report

// Content is the raw, unwrapped text for the four document fields.
type Content struct {
	Style   string `yaml:"style" mapstructure:"style"`
	Header  string `yaml:"header" mapstructure:"header"`
	Content string `yaml:"content" mapstructure:"content"`
	Footer  string `yaml:"footer" mapstructure:"footer"`
}

// DefaultContent returns the demo text used when nothing is configured.
func DefaultContent() Content {
	return Content{
		Style:   "Default style",
		Header:  "Report 2026",
		Content: "Sales grew by 20%",
		Footer:  "End of report",
	}
}

// Director applies the canonical assembly sequence to any Builder.
type Director struct {
	content Content
}

// NewDirector returns a director that fills documents with content. Empty
// fields fall back to DefaultContent.
func NewDirector(content Content) *Director {
	def := DefaultContent()
	if content.Style == "" {
		content.Style = def.Style
	}
	if content.Header == "" {
		content.Header = def.Header
	}
	if content.Content == "" {
		content.Content = def.Content
	}
	if content.Footer == "" {
		content.Footer = def.Footer
	}
	return &Director{content: content}
}

// Content returns the raw text the director applies.
func (d *Director) Content() Content {
	return d.content
}

// Construct sets style, header, content and footer on b, in that order, and
// returns the resulting document.
func (d *Director) Construct(b Builder) *Document {
	b.SetStyle(d.content.Style)
	b.SetHeader(d.content.Header)
	b.SetContent(d.content.Content)
	b.SetFooter(d.content.Footer)
	return b.Document()
}

// Assemble builds a fresh document for format.
func (d *Director) Assemble(format Format) (*Document, error) {
	b, err := NewBuilder(format)
	if err != nil {
		return nil, err
	}
	return d.Construct(b), nil
}
