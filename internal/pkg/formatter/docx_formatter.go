package formatter

import (
	"bytes"
	"fmt"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/validalex/draft-backend/internal/entity"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(pd *entity.PetitionDocument) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	for _, b := range layout(pd) {
		par := doc.AddParagraph()
		props := par.Properties()

		switch b.kind {
		case blockTitle:
			par.SetStyle("Title")
			props.SetAlignment(wml.ST_JcCenter)
			props.Spacing().SetAfter(20 * measurement.Point)
		case blockHeading:
			par.SetStyle("Heading2")
			props.Spacing().SetBefore(20 * measurement.Point)
			props.Spacing().SetAfter(10 * measurement.Point)
		case blockBody:
			props.SetAlignment(wml.ST_JcBoth)
			props.Spacing().SetAfter(10 * measurement.Point)
		case blockSpacer:
			props.Spacing().SetAfter(20 * measurement.Point)
			continue
		case blockClosing, blockSignature:
			props.SetAlignment(wml.ST_JcRight)
		}

		run := par.AddRun()
		run.AddText(b.text)
		if b.kind == blockSignature {
			run.Properties().SetBold(true)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("save docx: %w", err)
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
