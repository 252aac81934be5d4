package entity

import "strings"

// SectionKey names one of the seven fixed parts of the petition.
type SectionKey string

const (
	SectionEnderecamento       SectionKey = "enderecamento"
	SectionQualificacao        SectionKey = "qualificacao"
	SectionFatos               SectionKey = "fatos"
	SectionDireito             SectionKey = "direito"
	SectionPedidos             SectionKey = "pedidos"
	SectionValorCausa          SectionKey = "valor_causa"
	SectionRequerimentosFinais SectionKey = "requerimentos_finais"
)

// SectionKeys is the canonical order of the petition sections.
var SectionKeys = []SectionKey{
	SectionEnderecamento,
	SectionQualificacao,
	SectionFatos,
	SectionDireito,
	SectionPedidos,
	SectionValorCausa,
	SectionRequerimentosFinais,
}

// SectionLabels are the human headings used by the HTML fallback.
var SectionLabels = map[SectionKey]string{
	SectionEnderecamento:       "Endereçamento",
	SectionQualificacao:        "Qualificação",
	SectionFatos:               "Fatos",
	SectionDireito:             "Fundamentos Jurídicos",
	SectionPedidos:             "Pedidos",
	SectionValorCausa:          "Valor da Causa",
	SectionRequerimentosFinais: "Requerimentos Finais",
}

// Sections always carries all seven keys as strings; field order matches
// SectionKeys so the JSON encoding keeps the fixed order.
type Sections struct {
	Enderecamento       string `json:"enderecamento"`
	Qualificacao        string `json:"qualificacao"`
	Fatos               string `json:"fatos"`
	Direito             string `json:"direito"`
	Pedidos             string `json:"pedidos"`
	ValorCausa          string `json:"valor_causa"`
	RequerimentosFinais string `json:"requerimentos_finais"`
}

// Get returns the text stored under key, or "" for an unknown key.
func (s *Sections) Get(key SectionKey) string {
	if p := s.field(key); p != nil {
		return *p
	}
	return ""
}

// Set stores text under key. Unknown keys are ignored.
func (s *Sections) Set(key SectionKey, text string) {
	if p := s.field(key); p != nil {
		*p = text
	}
}

func (s *Sections) field(key SectionKey) *string {
	switch key {
	case SectionEnderecamento:
		return &s.Enderecamento
	case SectionQualificacao:
		return &s.Qualificacao
	case SectionFatos:
		return &s.Fatos
	case SectionDireito:
		return &s.Direito
	case SectionPedidos:
		return &s.Pedidos
	case SectionValorCausa:
		return &s.ValorCausa
	case SectionRequerimentosFinais:
		return &s.RequerimentosFinais
	}
	return nil
}

// Normalized returns a copy with every section trimmed.
func (s Sections) Normalized() Sections {
	out := Sections{}
	for _, k := range SectionKeys {
		out.Set(k, strings.TrimSpace(s.Get(k)))
	}
	return out
}

// HasAnyText reports whether at least one section has non-blank text.
func (s Sections) HasAnyText() bool {
	for _, k := range SectionKeys {
		if strings.TrimSpace(s.Get(k)) != "" {
			return true
		}
	}
	return false
}

// SectionsFromMap normalizes an untyped object into Sections: string values
// are trimmed, everything else becomes "", unknown keys are dropped.
func SectionsFromMap(src map[string]any) Sections {
	out := Sections{}
	for _, k := range SectionKeys {
		if v, ok := src[string(k)].(string); ok {
			out.Set(k, strings.TrimSpace(v))
		}
	}
	return out
}
