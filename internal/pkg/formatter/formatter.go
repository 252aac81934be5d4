package formatter

import (
	"fmt"

	"github.com/unidoc/unioffice/common/license"

	"github.com/validalex/draft-backend/internal/entity"
)

// ConfigureLicense registers the metered unioffice key used by the DOCX
// renderer. An empty key is a no-op.
func ConfigureLicense(key string) error {
	if key == "" {
		return nil
	}
	if err := license.SetMeteredKey(key); err != nil {
		return fmt.Errorf("set unioffice license: %w", err)
	}
	return nil
}

type Formatter interface {
	Format(doc *entity.PetitionDocument) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Options struct {
	// PDFFontPath points at a UTF-8 TTF font. Empty falls back to the core
	// Arial font with cp1252 translation.
	PDFFontPath string
}

type Factory struct {
	opts Options
}

func NewFactory(opts Options) *Factory {
	return &Factory{opts: opts}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(f.opts.PDFFontPath), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}
}
