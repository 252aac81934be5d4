package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/validalex/draft-backend/internal/entity"
)

func sampleDocument() *entity.PetitionDocument {
	return &entity.PetitionDocument{
		Sections: entity.Sections{
			Enderecamento: "EXCELENTÍSSIMO SENHOR DOUTOR JUIZ DE DIREITO DA VARA CÍVEL DE CAMPINAS/SP",
			Qualificacao:  "ACME LTDA, inscrita no CNPJ ...",
			Fatos:         "Primeiro fato.\n\nSegundo fato.",
			Pedidos:       "a) a condenação do réu;\nb) custas.",
		},
		LocalData: "Campinas, 1º de março de 2026.",
		Signature: entity.Signature{Nome: "Maria Souza", OAB: "OAB/SP 123.456"},
	}
}

func TestLayout(t *testing.T) {
	blocks := layout(sampleDocument())

	require.NotEmpty(t, blocks)
	assert.Equal(t, block{kind: blockTitle, text: petitionTitle}, blocks[0])
	assert.Equal(t, blockBody, blocks[1].kind)

	var headings []string
	var pending int
	for _, b := range blocks {
		if b.kind == blockHeading {
			headings = append(headings, b.text)
		}
		if b.text == pendingPlaceholder {
			pending++
		}
	}
	assert.Len(t, headings, 6)
	assert.Equal(t, "I – QUALIFICAÇÃO DAS PARTES", headings[0])
	assert.Equal(t, "VI – REQUERIMENTOS FINAIS", headings[5])
	// direito, valor_causa and requerimentos_finais are blank.
	assert.Equal(t, 3, pending)

	last := blocks[len(blocks)-1]
	assert.Equal(t, "OAB/SP 123.456", last.text)
	assert.Equal(t, blockSignature, blocks[len(blocks)-2].kind)
}

func TestTextLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, textLines(" a \r\n\r\nb\n  \nc"))
	assert.Empty(t, textLines("   "))
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleDocument())
	require.NoError(t, err)

	md := string(out)
	assert.True(t, strings.HasPrefix(md, "# "+petitionTitle+"\n\n"))
	assert.Contains(t, md, "## II – DOS FATOS\n\nPrimeiro fato.\n\nSegundo fato.\n\n")
	assert.Contains(t, md, "## III – DO DIREITO\n\n"+pendingPlaceholder)
	assert.Contains(t, md, "**Maria Souza**")
	assert.False(t, strings.HasSuffix(md, "\n"))
}

func TestPDFFormatter(t *testing.T) {
	out, err := NewPDFFormatter("").Format(sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFFormatter_MissingFontFallsBack(t *testing.T) {
	out, err := NewPDFFormatter("/nonexistent/font.ttf").Format(sampleDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestDOCXFormatter(t *testing.T) {
	out, err := NewDOCXFormatter().Format(sampleDocument())
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "license") {
		t.Skipf("unioffice license not configured: %v", err)
	}
	require.NoError(t, err)
	// DOCX is a zip container.
	assert.True(t, bytes.HasPrefix(out, []byte("PK\x03\x04")))
}

func TestFactory(t *testing.T) {
	f := NewFactory(Options{})

	for _, format := range []entity.ExportFormat{entity.FormatDOCX, entity.FormatPDF, entity.FormatMarkdown} {
		fm, err := f.Create(format)
		require.NoError(t, err)
		assert.NotEmpty(t, fm.ContentType())
		assert.True(t, strings.HasPrefix(fm.FileExtension(), "."))
	}

	_, err := f.Create("odt")
	require.ErrorIs(t, err, entity.ErrUnsupportedFormat)
}
