package formatter

import (
	"strings"

	"github.com/validalex/draft-backend/internal/entity"
)

const (
	petitionTitle      = "PETIÇÃO INICIAL – AÇÃO DE COBRANÇA"
	pendingPlaceholder = "[PENDENTE – INFORMAÇÃO NÃO FORNECIDA]"
)

type blockKind int

const (
	blockTitle blockKind = iota
	blockHeading
	blockBody
	blockSpacer
	blockClosing
	blockSignature
)

type block struct {
	kind blockKind
	text string
}

// headedSections lists the numbered headings in document order. The
// addressing section is printed right after the title with no heading.
var headedSections = []struct {
	key     entity.SectionKey
	heading string
}{
	{entity.SectionQualificacao, "I – QUALIFICAÇÃO DAS PARTES"},
	{entity.SectionFatos, "II – DOS FATOS"},
	{entity.SectionDireito, "III – DO DIREITO"},
	{entity.SectionPedidos, "IV – DOS PEDIDOS"},
	{entity.SectionValorCausa, "V – DO VALOR DA CAUSA"},
	{entity.SectionRequerimentosFinais, "VI – REQUERIMENTOS FINAIS"},
}

func orPending(s string) string {
	if strings.TrimSpace(s) == "" {
		return pendingPlaceholder
	}
	return s
}

// textLines splits text into trimmed non-empty lines.
func textLines(text string) []string {
	var out []string
	for line := range strings.SplitSeq(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// layout flattens a petition into the block sequence every renderer draws.
func layout(doc *entity.PetitionDocument) []block {
	blocks := []block{{kind: blockTitle, text: petitionTitle}}

	for _, line := range textLines(orPending(doc.Sections.Enderecamento)) {
		blocks = append(blocks, block{kind: blockBody, text: line})
	}

	for _, s := range headedSections {
		blocks = append(blocks, block{kind: blockHeading, text: s.heading})
		for _, line := range textLines(orPending(doc.Sections.Get(s.key))) {
			blocks = append(blocks, block{kind: blockBody, text: line})
		}
	}

	return append(blocks,
		block{kind: blockSpacer},
		block{kind: blockClosing, text: orPending(doc.LocalData)},
		block{kind: blockSignature, text: orPending(doc.Signature.Nome)},
		block{kind: blockClosing, text: orPending(doc.Signature.OAB)},
	)
}
