package assembler

import (
	"strings"
)

const (
	docOutros       = "outros"
	docOutrosPrefix = "outros:"

	evidenceLead = "Protesta provar o alegado por todos os meios em direito admitidos, especialmente pela prova documental, consistente em: "
)

// DocumentLabels maps the evidence codes offered by the form to the text
// used in the petition. Unknown codes are rendered verbatim.
var DocumentLabels = map[string]string{
	"contrato":      "Contrato Assinado",
	"orcamento":     "Orçamento aprovado",
	"pedido_compra": "Pedido de Compra",
	"nota_fiscal":   "Nota Fiscal",
	"boleto":        "Boleto bancário",
	"planilha":      "Planilha de cálculo",
	"canhoto":       "Canhoto da Nota Fiscal",
	"aceite":        "Termo de Aceite/Entrega",
	"tecno":         "Contexto tecnológico",
	"email":         "E-mails de cobrança",
	"conversas":     "Conversas de WhatsApp/Telegram",
	"envio":         "Envio de carta/Telegrama",
	docOutros:       "Outros",
}

// EvidenceLabels turns selected document codes into human labels, keeping
// first-seen order. An "outros:<detail>" entry decorates the "outros" label
// and is dropped when "outros" itself was not selected.
func EvidenceLabels(documents []string) []string {
	seen := make(map[string]bool)
	var labels []string
	var outrosDetail string

	for _, raw := range documents {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true

		if strings.HasPrefix(key, docOutrosPrefix) {
			if d := strings.TrimSpace(s[len(docOutrosPrefix):]); d != "" {
				outrosDetail = d
			}
			continue
		}

		label, ok := DocumentLabels[key]
		if !ok {
			label = s
		}
		if !contains(labels, label) {
			labels = append(labels, label)
		}
	}

	if outrosDetail != "" {
		for i, l := range labels {
			if l == DocumentLabels[docOutros] {
				labels[i] = l + " (" + outrosDetail + ")"
				break
			}
		}
	}
	return labels
}

// EvidenceParagraph returns the standard evidence clause for documents, or
// "" when nothing renderable was selected.
func EvidenceParagraph(documents []string) string {
	labels := EvidenceLabels(documents)
	if len(labels) == 0 {
		return ""
	}
	return evidenceLead + strings.Join(labels, "; ") + "."
}

// AppendParagraph appends paragraph to base separated by a blank line,
// unless base already contains it.
func AppendParagraph(base, paragraph string) string {
	a := strings.TrimSpace(base)
	p := strings.TrimSpace(paragraph)
	switch {
	case p == "":
		return a
	case a == "":
		return p
	case strings.Contains(a, p):
		return a
	default:
		return a + "\n\n" + p
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
