package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/validalex/draft-backend/internal/entity"
)

const minReuEnderecoLen = 12

var (
	extrajudicialPattern = regexp.MustCompile(`(?i)whats|email|carta|cart[oó]rio|notifica|extrajud`)
	isoDatePattern       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Validator checks petition input against a Schema. It is safe for
// concurrent use.
type Validator struct {
	schema Schema
}

func NewPetitionValidator(schema Schema) *Validator {
	return &Validator{schema: schema}
}

func (v *Validator) Schema() Schema {
	return v.schema
}

// Validate never fails: every anomaly becomes either a missing field, which
// blocks generation, or an alert, which does not.
func (v *Validator) Validate(in *entity.PetitionInput) entity.ValidationResult {
	if in == nil {
		in = &entity.PetitionInput{}
	}

	res := entity.ValidationResult{
		Missing: []entity.MissingField{},
		Alerts:  []entity.Alert{},
		Meta:    map[string]any{"schemaVersion": v.schema.Version},
	}
	seen := make(map[string]bool)
	addMissing := func(path, label string) {
		if seen[path] {
			return
		}
		seen[path] = true
		res.Missing = append(res.Missing, entity.MissingField{Path: path, Label: label})
	}
	addAlert := func(level entity.AlertLevel, code, msg string) {
		res.Alerts = append(res.Alerts, entity.Alert{Level: level, Code: code, Message: msg})
	}

	for _, f := range v.schema.RequiredCritical {
		if !f.Present(in) {
			addMissing(f.Path, f.Label)
		}
	}

	v.checkOrigem(in, addMissing, addAlert)

	reuEnd := in.Partes.Reu.Endereco
	if reuEnd != "" && utf8.RuneCountInString(reuEnd) < minReuEnderecoLen {
		addAlert(entity.AlertLevelWarn, entity.AlertReuEnderecoFraco,
			"Endereço do réu parece incompleto para fins de citação.")
	}

	if in.Fatos.TentativaExtrajudicial && !extrajudicialPattern.MatchString(in.Fatos.DescricaoOrientada) {
		addAlert(entity.AlertLevelInfo, entity.AlertExtrajNaoDescrita,
			"Tentativa extrajudicial marcada, mas o texto não descreve como ocorreu.")
	}

	if len(in.Provas.Documentos) == 0 {
		addAlert(entity.AlertLevelWarn, entity.AlertSemDocumentos,
			"Nenhum documento fornecido; risco processual elevado.")
	}

	valor := in.Divida.Valor
	if !valor.Positive() {
		addAlert(entity.AlertLevelError, entity.AlertValorInvalido, "O valor da dívida é inválido.")
		// A supplied but unusable amount blocks generation like an absent one.
		if valor.Present() {
			addMissing("divida.valor", v.schema.Label("divida.valor"))
		}
	}

	if dv := in.Divida.DataVencimento; dv != "" && !isoDatePattern.MatchString(dv) {
		addAlert(entity.AlertLevelWarn, entity.AlertDataFormato,
			"Data de vencimento deve seguir o formato YYYY-MM-DD.")
	}

	causa := in.Config.ValorCausa
	if valor.Finite() && causa.Finite() && causa.Value < valor.Value {
		addAlert(entity.AlertLevelWarn, entity.AlertValorCausaMenor,
			"O valor da causa é inferior ao valor da dívida informada; verificar antes do protocolo.")
	}

	res.OK = len(res.Missing) == 0
	return res
}

func (v *Validator) checkOrigem(
	in *entity.PetitionInput,
	addMissing func(path, label string),
	addAlert func(level entity.AlertLevel, code, msg string),
) {
	cat := strings.TrimSpace(in.Divida.OrigemCategoria)
	sub := strings.TrimSpace(in.Divida.OrigemSubtipo)

	if cat != "" && sub == "" {
		addMissing("divida.origem_subtipo", "Origem da dívida - Subtipo")
	}
	if cat == "" && sub != "" {
		addMissing("divida.origem_categoria", "Origem da dívida - Categoria")
		addAlert(entity.AlertLevelError, entity.AlertOrigemInconsistente,
			"Origem da dívida inconsistente: subtipo informado sem categoria.")
	}
	if cat != "" && !IsValidOrigemCategoria(cat) {
		addAlert(entity.AlertLevelError, entity.AlertOrigemCategoriaInvalida,
			"Origem da dívida - Categoria inválida. Selecione uma categoria permitida no formulário.")
	}
	if cat != "" && sub != "" && IsValidOrigemCategoria(cat) && !IsValidOrigemSubtipo(cat, sub) {
		addAlert(entity.AlertLevelError, entity.AlertOrigemSubtipoInvalido,
			"Origem da dívida - Subtipo inválido para a categoria selecionada.")
	}
}
