package formatter

import (
	"bytes"
	"fmt"

	"github.com/validalex/draft-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(doc *entity.PetitionDocument) ([]byte, error) {
	var buf bytes.Buffer
	for _, b := range layout(doc) {
		switch b.kind {
		case blockTitle:
			fmt.Fprintf(&buf, "# %s\n\n", b.text)
		case blockHeading:
			fmt.Fprintf(&buf, "## %s\n\n", b.text)
		case blockSpacer:
			buf.WriteString("---\n\n")
		case blockSignature:
			fmt.Fprintf(&buf, "**%s**\n\n", b.text)
		default:
			fmt.Fprintf(&buf, "%s\n\n", b.text)
		}
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
