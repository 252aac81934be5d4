package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/validalex/draft-backend/internal/entity"
)

const fullSections = `{
	"enderecamento": "Ao Juízo",
	"qualificacao": "",
	"fatos": "Fatos",
	"direito": "",
	"pedidos": "",
	"valor_causa": "",
	"requerimentos_finais": ""
}`

func TestValidateExportSections(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := ValidateExportSections(json.RawMessage(fullSections))
		require.NoError(t, err)
		assert.Equal(t, "Ao Juízo", s.Enderecamento)
		assert.Equal(t, "Fatos", s.Fatos)
	})

	tests := []struct {
		name    string
		raw     string
		wantMsg string
	}{
		{name: "absent", raw: ``, wantMsg: "esperado OBJETO"},
		{name: "array", raw: `["a"]`, wantMsg: "esperado OBJETO"},
		{name: "missing key", raw: `{"enderecamento": "x"}`, wantMsg: "chave ausente 'qualificacao'"},
		{
			name:    "wrong type",
			raw:     `{"enderecamento":"x","qualificacao":1,"fatos":"","direito":"","pedidos":"","valor_causa":"","requerimentos_finais":""}`,
			wantMsg: "'qualificacao' deve ser string",
		},
		{
			name:    "null value",
			raw:     `{"enderecamento":"x","qualificacao":null,"fatos":"f","direito":"d","pedidos":"p","valor_causa":"v","requerimentos_finais":"r"}`,
			wantMsg: "'qualificacao' deve ser string",
		},
		{
			name:    "all blank",
			raw:     `{"enderecamento":" ","qualificacao":"","fatos":"","direito":"","pedidos":"","valor_causa":"","requerimentos_finais":""}`,
			wantMsg: "está vazio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateExportSections(json.RawMessage(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrInvalidSections)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateExportRequest(t *testing.T) {
	req := &entity.ExportRequest{
		Doc: entity.ExportDoc{
			Sections:  json.RawMessage(fullSections),
			LocalData: "São Paulo, 1 de março de 2025",
			Signature: &entity.Signature{Nome: "Dra. Ana", OAB: "OAB/SP 123.456"},
		},
	}

	doc, err := ValidateExportRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "Dra. Ana", doc.Signature.Nome)
	assert.Equal(t, "São Paulo, 1 de março de 2025", doc.LocalData)

	req.Delivery = "fax"
	_, err = ValidateExportRequest(req)
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}
