package report

import (
	"testing"

	"github.com/conneroisu/patterns/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderWrapping(t *testing.T) {
	testCases := []struct {
		format   Format
		expected string
	}{
		{FormatText, "TEXT HEADER: Report"},
		{FormatHTML, "<h1>Report</h1>"},
		{FormatXML, "<header>Report</header>"},
	}

	for _, tc := range testCases {
		t.Run(tc.format.String(), func(t *testing.T) {
			b, err := NewBuilder(tc.format)
			require.NoError(t, err)

			b.SetHeader("Report")
			assert.Equal(t, tc.expected, b.Document().Header)
		})
	}
}

func TestAllFieldWrapping(t *testing.T) {
	testCases := []struct {
		name     string
		builder  Builder
		expected Document
	}{
		{
			name:    "text",
			builder: NewTextBuilder(),
			expected: Document{
				Style:   "s",
				Header:  "TEXT HEADER: h",
				Content: "c",
				Footer:  "END: f",
			},
		},
		{
			name:    "html",
			builder: NewHTMLBuilder(),
			expected: Document{
				Style:   "<style>s</style>",
				Header:  "<h1>h</h1>",
				Content: "<p>c</p>",
				Footer:  "<footer>f</footer>",
			},
		},
		{
			name:    "xml",
			builder: NewXMLBuilder(),
			expected: Document{
				Style:   "<style>s</style>",
				Header:  "<header>h</header>",
				Content: "<content>c</content>",
				Footer:  "<footer>f</footer>",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.builder.SetStyle("s")
			tc.builder.SetHeader("h")
			tc.builder.SetContent("c")
			tc.builder.SetFooter("f")
			assert.Equal(t, tc.expected, *tc.builder.Document())
		})
	}
}

func TestSetterOverwritesOnlyItsField(t *testing.T) {
	b := NewHTMLBuilder()
	b.SetHeader("first")
	b.SetFooter("foot")
	b.SetHeader("second")

	doc := b.Document()
	assert.Equal(t, "<h1>second</h1>", doc.Header)
	assert.Equal(t, "<footer>foot</footer>", doc.Footer)
	assert.Empty(t, doc.Content)
	assert.Empty(t, doc.Style)
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "TEXT", " Html ", "xml"} {
		f, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Contains(t, Formats(), f)
	}

	_, err := ParseFormat("pdf")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), "pdf")
}

func TestNewBuilderUnknownFormat(t *testing.T) {
	b, err := NewBuilder(Format("markdown"))
	assert.Nil(t, b)
	assert.True(t, errors.IsValidationError(err))
}

func TestFormatsStableOrder(t *testing.T) {
	assert.Equal(t, []Format{FormatHTML, FormatText, FormatXML}, Formats())
	assert.Equal(t, Formats(), Formats())
}

func TestFormatHeading(t *testing.T) {
	assert.Equal(t, "HTML", FormatHTML.Heading())
	assert.Equal(t, "XML", FormatXML.Heading())
	assert.Equal(t, "TEXT", FormatText.Heading())
}

func TestBuilderReportsFormat(t *testing.T) {
	assert.Equal(t, FormatText, NewTextBuilder().Format())
	assert.Equal(t, FormatHTML, NewHTMLBuilder().Format())
	assert.Equal(t, FormatXML, NewXMLBuilder().Format())
}
