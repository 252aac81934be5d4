package validator

import (
	"strings"

	"github.com/validalex/draft-backend/internal/entity"
)

// SchemaVersion identifies the form schema the validator enforces.
const SchemaVersion = "cobranca-form-1.1.0"

// FieldSpec describes a critical field. Present is a typed accessor that
// reports whether the field holds a non-empty value.
type FieldSpec struct {
	Path    string
	Label   string
	Present func(in *entity.PetitionInput) bool
}

// OptionalSpec documents an optional field and its legal impact.
type OptionalSpec struct {
	Path   string
	Impact string
}

// Schema lists the fields whose absence blocks draft generation.
type Schema struct {
	Version          string
	RequiredCritical []FieldSpec
	Optional         []OptionalSpec
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// DefaultSchema is the canonical schema of the "ação de cobrança" form.
func DefaultSchema() Schema {
	return Schema{
		Version: SchemaVersion,
		RequiredCritical: []FieldSpec{
			{
				Path:    "partes.autor.nome",
				Label:   "Autor - Nome",
				Present: func(in *entity.PetitionInput) bool { return notBlank(in.Partes.Autor.Nome) },
			},
			{
				Path:    "partes.autor.cpf_cnpj",
				Label:   "Autor - CPF/CNPJ",
				Present: func(in *entity.PetitionInput) bool { return notBlank(in.Partes.Autor.CPFCNPJ) },
			},
			{
				Path:    "partes.autor.endereco",
				Label:   "Autor - Endereço",
				Present: func(in *entity.PetitionInput) bool { return notBlank(in.Partes.Autor.Endereco) },
			},
			{
				Path:    "partes.reu.nome",
				Label:   "Réu - Nome/Razão social",
				Present: func(in *entity.PetitionInput) bool { return notBlank(in.Partes.Reu.Nome) },
			},
			{
				Path:    "partes.reu.cpf_cnpj",
				Label:   "Réu - CPF/CNPJ",
				Present: func(in *entity.PetitionInput) bool { return notBlank(in.Partes.Reu.CPFCNPJ) },
			},
			{
				Path:    "partes.reu.endereco",
				Label:   "Réu - Endereço",
				Present: func(in *entity.PetitionInput) bool { return notBlank(in.Partes.Reu.Endereco) },
			},
			{
				// A free-text origin or any part of the category/subtype pair
				// satisfies this field; the pair's coherence is checked apart.
				Path:  "divida.origem",
				Label: "Origem da dívida",
				Present: func(in *entity.PetitionInput) bool {
					d := in.Divida
					return notBlank(d.Origem) || notBlank(d.OrigemCategoria) || notBlank(d.OrigemSubtipo)
				},
			},
			{
				Path:    "divida.valor",
				Label:   "Valor devido",
				Present: func(in *entity.PetitionInput) bool { return in.Divida.Valor.Present() },
			},
			{
				Path:    "divida.data_vencimento",
				Label:   "Data de vencimento",
				Present: func(in *entity.PetitionInput) bool { return notBlank(in.Divida.DataVencimento) },
			},
			{
				Path:    "fatos.descricao_orientada",
				Label:   "Descrição dos fatos (guiada)",
				Present: func(in *entity.PetitionInput) bool { return notBlank(in.Fatos.DescricaoOrientada) },
			},
		},
		Optional: []OptionalSpec{
			{Path: "fatos.tentativa_extrajudicial", Impact: "reduz risco de improcedência"},
			{Path: "provas.documentos", Impact: "prova documental mínima"},
			{Path: "config.juizo", Impact: "adequação do foro"},
			{Path: "config.pedir_juros", Impact: "pedido acessório"},
			{Path: "config.pedir_correcao", Impact: "pedido acessório"},
		},
	}
}

// Label returns the label of a critical field, or the path itself.
func (s Schema) Label(path string) string {
	for _, f := range s.RequiredCritical {
		if f.Path == path {
			return f.Label
		}
	}
	return path
}
