package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DraftRequest is the body accepted by the draft routes.
type DraftRequest struct {
	Data            PetitionInput `json:"data"`
	TemplateVersion string        `json:"templateVersion,omitempty"`
	PromptVersion   string        `json:"promptVersion,omitempty"`
	CallbackURL     string        `json:"callback_url,omitempty"`
}

// PetitionInput is the structured form data of an "ação de cobrança".
type PetitionInput struct {
	Partes Partes     `json:"partes"`
	Divida Divida     `json:"divida"`
	Fatos  Fatos      `json:"fatos"`
	Provas Provas     `json:"provas"`
	Config CaseConfig `json:"config"`
}

type Partes struct {
	Autor Parte `json:"autor"`
	Reu   Parte `json:"reu"`
}

type Parte struct {
	Nome     string `json:"nome,omitempty"`
	CPFCNPJ  string `json:"cpf_cnpj,omitempty"`
	Endereco string `json:"endereco,omitempty"`
}

type Divida struct {
	Origem          string `json:"origem,omitempty"`
	OrigemCategoria string `json:"origem_categoria,omitempty"`
	OrigemSubtipo   string `json:"origem_subtipo,omitempty"`
	Valor           Amount `json:"valor"`
	DataVencimento  string `json:"data_vencimento,omitempty"`
}

type Fatos struct {
	DescricaoOrientada     string `json:"descricao_orientada,omitempty"`
	TentativaExtrajudicial bool   `json:"tentativa_extrajudicial,omitempty"`
}

type Provas struct {
	Documentos []string `json:"documentos,omitempty"`
}

type CaseConfig struct {
	Juizo         string `json:"juizo,omitempty"`
	ValorCausa    Amount `json:"valor_causa"`
	PedirJuros    bool   `json:"pedir_juros,omitempty"`
	PedirCorrecao bool   `json:"pedir_correcao,omitempty"`
}

// Truncated returns a copy where every free-text field longer than maxChars
// runes is cut and suffixed with an ellipsis.
func (p PetitionInput) Truncated(maxChars int) PetitionInput {
	if maxChars <= 0 {
		return p
	}
	t := func(s string) string { return truncateRunes(s, maxChars) }

	out := p
	out.Partes.Autor = Parte{Nome: t(p.Partes.Autor.Nome), CPFCNPJ: t(p.Partes.Autor.CPFCNPJ), Endereco: t(p.Partes.Autor.Endereco)}
	out.Partes.Reu = Parte{Nome: t(p.Partes.Reu.Nome), CPFCNPJ: t(p.Partes.Reu.CPFCNPJ), Endereco: t(p.Partes.Reu.Endereco)}
	out.Divida.Origem = t(p.Divida.Origem)
	out.Divida.OrigemCategoria = t(p.Divida.OrigemCategoria)
	out.Divida.OrigemSubtipo = t(p.Divida.OrigemSubtipo)
	out.Divida.DataVencimento = t(p.Divida.DataVencimento)
	out.Fatos.DescricaoOrientada = t(p.Fatos.DescricaoOrientada)
	out.Config.Juizo = t(p.Config.Juizo)
	if p.Provas.Documentos != nil {
		out.Provas.Documentos = make([]string, len(p.Provas.Documentos))
		for i, d := range p.Provas.Documentos {
			out.Provas.Documentos[i] = t(d)
		}
	}
	return out
}

func truncateRunes(s string, maxChars int) string {
	if utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	r := []rune(s)
	return string(r[:maxChars]) + "…"
}

// Amount is a monetary value that accepts JSON numbers and numeric strings.
// Raw keeps the trimmed input so that "present but invalid" can be told
// apart from "absent".
type Amount struct {
	Raw   string
	Value float64
	Valid bool
}

// NewAmount builds a valid Amount from a float.
func NewAmount(v float64) Amount {
	return Amount{Raw: strconv.FormatFloat(v, 'f', -1, 64), Value: v, Valid: !math.IsNaN(v) && !math.IsInf(v, 0)}
}

// Present reports whether any value was supplied.
func (a Amount) Present() bool {
	return strings.TrimSpace(a.Raw) != ""
}

// Finite reports whether the value parsed into a finite number.
func (a Amount) Finite() bool {
	return a.Valid && !math.IsNaN(a.Value) && !math.IsInf(a.Value, 0)
}

// Positive reports whether the value is a finite number greater than zero.
func (a Amount) Positive() bool {
	return a.Finite() && a.Value > 0
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = Amount{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		raw = s
	} else if data[0] == '{' || data[0] == '[' {
		// Objects and arrays are kept as present-but-invalid values.
		a.Raw = raw
		return nil
	}

	a.Raw = strings.TrimSpace(raw)
	if a.Raw == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(a.Raw, 64); err == nil {
		a.Value = v
		a.Valid = !math.IsNaN(v) && !math.IsInf(v, 0)
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	switch {
	case !a.Present():
		return []byte("null"), nil
	case a.Finite():
		return []byte(strconv.FormatFloat(a.Value, 'f', -1, 64)), nil
	default:
		return json.Marshal(a.Raw)
	}
}
