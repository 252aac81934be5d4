package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Form bodies come from hand-built front ends: numbers arrive where text is
// expected, flags arrive as strings and lists as scalars. The loose types
// below coerce those values so that decoding never fails on a well-formed
// JSON document and the validator decides what is missing.

// looseString accepts strings, numbers and booleans. null is empty; objects
// and arrays keep their raw JSON text so they still count as present.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = ""
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
	default:
		*s = looseString(data)
	}
	return nil
}

// looseBool accepts booleans, numbers and strings. Strings that do not parse
// as a boolean are true when non-blank and not "0".
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*b = false
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		v = strings.TrimSpace(v)
		if parsed, err := strconv.ParseBool(v); err == nil {
			*b = looseBool(parsed)
			return nil
		}
		*b = v != "" && v != "0"
	case data[0] == '{' || data[0] == '[':
		*b = true
	default:
		if f, err := strconv.ParseFloat(string(data), 64); err == nil {
			*b = f != 0
			return nil
		}
		*b = looseBool(bytes.Equal(data, []byte("true")))
	}
	return nil
}

// looseStrings accepts an array of scalars. Any other value is an empty
// list; blank items are dropped.
type looseStrings []string

func (l *looseStrings) UnmarshalJSON(data []byte) error {
	*l = nil
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil
	}
	var items []looseString
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	for _, it := range items {
		if s := strings.TrimSpace(string(it)); s != "" {
			*l = append(*l, string(it))
		}
	}
	return nil
}

// decodeObject unmarshals data into v when it is a JSON object and leaves v
// untouched otherwise.
func decodeObject(data []byte, v any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (p *PetitionInput) UnmarshalJSON(data []byte) error {
	type plain PetitionInput
	var out plain
	if err := decodeObject(data, &out); err != nil {
		return err
	}
	*p = PetitionInput(out)
	return nil
}

func (p *Partes) UnmarshalJSON(data []byte) error {
	type plain Partes
	var out plain
	if err := decodeObject(data, &out); err != nil {
		return err
	}
	*p = Partes(out)
	return nil
}

func (p *Parte) UnmarshalJSON(data []byte) error {
	var raw struct {
		Nome     looseString `json:"nome"`
		CPFCNPJ  looseString `json:"cpf_cnpj"`
		Endereco looseString `json:"endereco"`
	}
	if err := decodeObject(data, &raw); err != nil {
		return err
	}
	*p = Parte{Nome: string(raw.Nome), CPFCNPJ: string(raw.CPFCNPJ), Endereco: string(raw.Endereco)}
	return nil
}

func (d *Divida) UnmarshalJSON(data []byte) error {
	var raw struct {
		Origem          looseString `json:"origem"`
		OrigemCategoria looseString `json:"origem_categoria"`
		OrigemSubtipo   looseString `json:"origem_subtipo"`
		Valor           Amount      `json:"valor"`
		DataVencimento  looseString `json:"data_vencimento"`
	}
	if err := decodeObject(data, &raw); err != nil {
		return err
	}
	*d = Divida{
		Origem:          string(raw.Origem),
		OrigemCategoria: string(raw.OrigemCategoria),
		OrigemSubtipo:   string(raw.OrigemSubtipo),
		Valor:           raw.Valor,
		DataVencimento:  string(raw.DataVencimento),
	}
	return nil
}

func (f *Fatos) UnmarshalJSON(data []byte) error {
	var raw struct {
		DescricaoOrientada     looseString `json:"descricao_orientada"`
		TentativaExtrajudicial looseBool   `json:"tentativa_extrajudicial"`
	}
	if err := decodeObject(data, &raw); err != nil {
		return err
	}
	*f = Fatos{
		DescricaoOrientada:     string(raw.DescricaoOrientada),
		TentativaExtrajudicial: bool(raw.TentativaExtrajudicial),
	}
	return nil
}

func (p *Provas) UnmarshalJSON(data []byte) error {
	var raw struct {
		Documentos looseStrings `json:"documentos"`
	}
	if err := decodeObject(data, &raw); err != nil {
		return err
	}
	*p = Provas{Documentos: []string(raw.Documentos)}
	return nil
}

func (c *CaseConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		Juizo         looseString `json:"juizo"`
		ValorCausa    Amount      `json:"valor_causa"`
		PedirJuros    looseBool   `json:"pedir_juros"`
		PedirCorrecao looseBool   `json:"pedir_correcao"`
	}
	if err := decodeObject(data, &raw); err != nil {
		return err
	}
	*c = CaseConfig{
		Juizo:         string(raw.Juizo),
		ValorCausa:    raw.ValorCausa,
		PedirJuros:    bool(raw.PedirJuros),
		PedirCorrecao: bool(raw.PedirCorrecao),
	}
	return nil
}
