package validator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/validalex/draft-backend/internal/entity"
)

func validInput() *entity.PetitionInput {
	return &entity.PetitionInput{
		Partes: entity.Partes{
			Autor: entity.Parte{Nome: "Maria Souza", CPFCNPJ: "123.456.789-00", Endereco: "Rua das Flores, 100, São Paulo/SP"},
			Reu:   entity.Parte{Nome: "Comércio ABC Ltda", CPFCNPJ: "12.345.678/0001-90", Endereco: "Av. Paulista, 1000, São Paulo/SP"},
		},
		Divida: entity.Divida{
			OrigemCategoria: "CONTRATO",
			OrigemSubtipo:   "CONTRATO_PRESTACAO_SERVICOS",
			Valor:           entity.NewAmount(15000),
			DataVencimento:  "2024-03-10",
		},
		Fatos: entity.Fatos{
			DescricaoOrientada:     "Prestei serviços de consultoria e o réu não pagou. Enviei notificação por email.",
			TentativaExtrajudicial: true,
		},
		Provas: entity.Provas{Documentos: []string{"contrato", "notas_fiscais"}},
		Config: entity.CaseConfig{ValorCausa: entity.NewAmount(15000)},
	}
}

func alertCodes(alerts []entity.Alert) []string {
	codes := make([]string, 0, len(alerts))
	for _, a := range alerts {
		codes = append(codes, a.Code)
	}
	return codes
}

func TestValidate_ValidInput(t *testing.T) {
	v := NewPetitionValidator(DefaultSchema())

	res := v.Validate(validInput())

	assert.True(t, res.OK)
	assert.Empty(t, res.Missing)
	assert.Empty(t, res.Alerts)
	assert.Equal(t, SchemaVersion, res.Meta["schemaVersion"])
}

func TestValidate_MissingReuDocument(t *testing.T) {
	v := NewPetitionValidator(DefaultSchema())
	in := validInput()
	in.Partes.Reu.CPFCNPJ = "   "

	res := v.Validate(in)

	assert.False(t, res.OK)
	require.Len(t, res.Missing, 1)
	assert.Equal(t, entity.MissingField{Path: "partes.reu.cpf_cnpj", Label: "Réu - CPF/CNPJ"}, res.Missing[0])
}

func TestValidate_EmptyInput(t *testing.T) {
	v := NewPetitionValidator(DefaultSchema())

	for _, in := range []*entity.PetitionInput{nil, {}} {
		res := v.Validate(in)

		assert.False(t, res.OK)
		assert.Len(t, res.Missing, len(DefaultSchema().RequiredCritical))
		assert.Contains(t, alertCodes(res.Alerts), entity.AlertSemDocumentos)
		assert.Contains(t, alertCodes(res.Alerts), entity.AlertValorInvalido)
	}
}

func TestValidate_OrigemCoherence(t *testing.T) {
	v := NewPetitionValidator(DefaultSchema())

	t.Run("category without subtype", func(t *testing.T) {
		in := validInput()
		in.Divida.OrigemSubtipo = ""

		res := v.Validate(in)

		assert.False(t, res.OK)
		assert.Equal(t, []entity.MissingField{{Path: "divida.origem_subtipo", Label: "Origem da dívida - Subtipo"}}, res.Missing)
		assert.NotContains(t, alertCodes(res.Alerts), entity.AlertOrigemInconsistente)
	})

	t.Run("subtype without category", func(t *testing.T) {
		in := validInput()
		in.Divida.OrigemCategoria = ""

		res := v.Validate(in)

		assert.False(t, res.OK)
		assert.Equal(t, []entity.MissingField{{Path: "divida.origem_categoria", Label: "Origem da dívida - Categoria"}}, res.Missing)
		assert.Contains(t, alertCodes(res.Alerts), entity.AlertOrigemInconsistente)
	})

	t.Run("unknown category", func(t *testing.T) {
		in := validInput()
		in.Divida.OrigemCategoria = "LOTERIA"

		res := v.Validate(in)

		assert.True(t, res.OK)
		assert.Equal(t, []string{entity.AlertOrigemCategoriaInvalida}, alertCodes(res.Alerts))
	})

	t.Run("subtype of another category", func(t *testing.T) {
		in := validInput()
		in.Divida.OrigemSubtipo = "CHEQUE_PRESCRITO"

		res := v.Validate(in)

		assert.True(t, res.OK)
		assert.Equal(t, []string{entity.AlertOrigemSubtipoInvalido}, alertCodes(res.Alerts))
	})

	t.Run("free text origin only", func(t *testing.T) {
		in := validInput()
		in.Divida.OrigemCategoria = ""
		in.Divida.OrigemSubtipo = ""
		in.Divida.Origem = "Contrato verbal de prestação de serviços"

		res := v.Validate(in)

		assert.True(t, res.OK)
		assert.Empty(t, res.Alerts)
	})
}

func TestValidate_Valor(t *testing.T) {
	v := NewPetitionValidator(DefaultSchema())

	tests := []struct {
		name        string
		valor       entity.Amount
		wantMissing bool
	}{
		{name: "absent", valor: entity.Amount{}, wantMissing: true},
		{name: "zero", valor: entity.NewAmount(0), wantMissing: true},
		{name: "negative", valor: entity.NewAmount(-10), wantMissing: true},
		{name: "not a number", valor: entity.Amount{Raw: "abc"}, wantMissing: true},
		{name: "infinite", valor: entity.Amount{Raw: "Inf", Value: math.Inf(1)}, wantMissing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Divida.Valor = tt.valor

			res := v.Validate(in)

			assert.False(t, res.OK)
			assert.Equal(t, []entity.MissingField{{Path: "divida.valor", Label: "Valor devido"}}, res.Missing)
			assert.Contains(t, alertCodes(res.Alerts), entity.AlertValorInvalido)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	v := NewPetitionValidator(DefaultSchema())

	in := validInput()
	in.Partes.Reu.Endereco = "Rua X, 1"
	in.Fatos.DescricaoOrientada = "O réu não pagou a fatura."
	in.Provas.Documentos = nil
	in.Divida.DataVencimento = "10/03/2024"
	in.Config.ValorCausa = entity.NewAmount(100)

	res := v.Validate(in)

	assert.True(t, res.OK, "alerts must not block generation")
	assert.Equal(t, []string{
		entity.AlertReuEnderecoFraco,
		entity.AlertExtrajNaoDescrita,
		entity.AlertSemDocumentos,
		entity.AlertDataFormato,
		entity.AlertValorCausaMenor,
	}, alertCodes(res.Alerts))
	assert.Equal(t, entity.AlertLevelInfo, res.Alerts[1].Level)
}

func TestValidate_ExtrajudicialKeywords(t *testing.T) {
	v := NewPetitionValidator(DefaultSchema())

	for _, desc := range []string{"mandei WhatsApp", "Carta registrada", "protesto em CARTÓRIO", "tentativa extrajudicial"} {
		in := validInput()
		in.Fatos.DescricaoOrientada = desc

		res := v.Validate(in)

		assert.NotContains(t, alertCodes(res.Alerts), entity.AlertExtrajNaoDescrita, desc)
	}
}

func TestValidate_FromJSON(t *testing.T) {
	body := `{
		"partes": {
			"autor": {"nome": "Maria", "cpf_cnpj": "12345678900", "endereco": "Rua das Flores, 100"},
			"reu": {"nome": "João", "cpf_cnpj": "98765432100", "endereco": "Rua das Palmeiras, 200"}
		},
		"divida": {"origem": "empréstimo", "valor": "2500.50", "data_vencimento": "2024-01-31"},
		"fatos": {"descricao_orientada": "Emprestei e não recebi, mandei email."},
		"provas": {"documentos": ["comprovante_transferencia"]},
		"config": {"valor_causa": 2500.50}
	}`

	var in entity.PetitionInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	res := NewPetitionValidator(DefaultSchema()).Validate(&in)

	assert.True(t, res.OK)
	assert.Empty(t, res.Alerts)
}

func TestValidate_FromJSON_LooseTypes(t *testing.T) {
	base := func(reu, fatos, provas string) string {
		return `{
			"partes": {
				"autor": {"nome": "Maria", "cpf_cnpj": "12345678900", "endereco": "Rua das Flores, 100"},
				"reu": ` + reu + `
			},
			"divida": {"origem": "empréstimo", "valor": 2500, "data_vencimento": "2024-01-31"},
			"fatos": ` + fatos + `,
			"provas": ` + provas + `,
			"config": {"valor_causa": 2500}
		}`
	}
	reu := `{"nome": "João", "cpf_cnpj": "98765432100", "endereco": "Rua das Palmeiras, 200"}`
	fatos := `{"descricao_orientada": "Emprestei e não recebi, mandei email."}`
	provas := `{"documentos": ["comprovante"]}`

	t.Run("numeric document number", func(t *testing.T) {
		body := base(`{"nome": "João", "cpf_cnpj": 98765432100, "endereco": "Rua das Palmeiras, 200"}`, fatos, provas)

		var in entity.PetitionInput
		require.NoError(t, json.Unmarshal([]byte(body), &in))
		assert.Equal(t, "98765432100", in.Partes.Reu.CPFCNPJ)

		res := NewPetitionValidator(DefaultSchema()).Validate(&in)
		assert.True(t, res.OK)
	})

	t.Run("string flag", func(t *testing.T) {
		body := base(reu, `{"descricao_orientada": "Não paga.", "tentativa_extrajudicial": "true"}`, provas)

		var in entity.PetitionInput
		require.NoError(t, json.Unmarshal([]byte(body), &in))
		assert.True(t, in.Fatos.TentativaExtrajudicial)

		res := NewPetitionValidator(DefaultSchema()).Validate(&in)
		assert.True(t, res.OK)
		assert.Contains(t, alertCodes(res.Alerts), entity.AlertExtrajNaoDescrita)
	})

	t.Run("scalar document list", func(t *testing.T) {
		body := base(reu, fatos, `{"documentos": "contrato"}`)

		var in entity.PetitionInput
		require.NoError(t, json.Unmarshal([]byte(body), &in))
		assert.Empty(t, in.Provas.Documentos)

		res := NewPetitionValidator(DefaultSchema()).Validate(&in)
		assert.True(t, res.OK)
		assert.Contains(t, alertCodes(res.Alerts), entity.AlertSemDocumentos)
	})

	t.Run("group of the wrong type", func(t *testing.T) {
		body := base(`"João"`, fatos, provas)

		var in entity.PetitionInput
		require.NoError(t, json.Unmarshal([]byte(body), &in))

		res := NewPetitionValidator(DefaultSchema()).Validate(&in)
		assert.False(t, res.OK)
		assert.Contains(t, res.Missing, entity.MissingField{Path: "partes.reu.cpf_cnpj", Label: "Réu - CPF/CNPJ"})
	})
}
