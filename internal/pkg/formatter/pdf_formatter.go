package formatter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/validalex/draft-backend/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the family name registered for the UTF-8 font.
	pdfFontName = "PetitionSans"
)

type PDFFormatter struct {
	fontPath string
}

func NewPDFFormatter(fontPath string) *PDFFormatter {
	return &PDFFormatter{fontPath: fontPath}
}

func (mf *PDFFormatter) Format(doc *entity.PetitionDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	fontName := "Arial"
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if mf.fontPath != "" {
		if _, err := os.Stat(mf.fontPath); err == nil {
			pdf.AddUTF8Font(pdfFontName, "", mf.fontPath)
			pdf.AddUTF8Font(pdfFontName, "B", mf.fontPath)
			fontName = pdfFontName
			translate = func(s string) string { return s }
		}
	}

	for _, b := range layout(doc) {
		text := translate(b.text)
		switch b.kind {
		case blockTitle:
			pdf.SetFont(fontName, "B", 15)
			pdf.MultiCell(0, 8, text, "", "C", false)
			pdf.Ln(6)
		case blockHeading:
			pdf.Ln(4)
			pdf.SetFont(fontName, "B", 12)
			pdf.MultiCell(0, 7, text, "", "L", false)
			pdf.Ln(2)
		case blockBody:
			pdf.SetFont(fontName, "", 11)
			pdf.MultiCell(0, 6, text, "", "J", false)
			pdf.Ln(2)
		case blockSpacer:
			pdf.Ln(8)
		case blockClosing:
			pdf.SetFont(fontName, "", 11)
			pdf.MultiCell(0, 6, text, "", "R", false)
		case blockSignature:
			pdf.SetFont(fontName, "B", 11)
			pdf.MultiCell(0, 6, text, "", "R", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
