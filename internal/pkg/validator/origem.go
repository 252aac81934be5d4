package validator

// origemPorCategoria is the closed mapping of debt-origin categories to
// their allowed subtypes. It mirrors the options offered by the form.
var origemPorCategoria = map[string][]string{
	"CONTRATO": {
		"CONTRATO_COMPRA_VENDA",
		"CONTRATO_PRESTACAO_SERVICOS",
		"CONTRATO_EMPREITADA",
		"CONTRATO_LOCACAO",
		"CONTRATO_MUTUO",
		"FORNECIMENTO_PRODUTOS",
		"LICENCIAMENTO_SOFTWARE_SAAS",
		"CONTRATO_MANDATO",
		"CONTRATO_SOCIEDADE",
		"CONTRATO_ATIPICO",
	},
	"TITULO_PRESCRITO": {
		"CHEQUE_PRESCRITO",
		"NOTA_PROMISSORIA_PRESCRITA",
		"DUPLICATA_PRESCRITA",
	},
	"ENRIQUECIMENTO_SEM_CAUSA": {
		"PAGAMENTO_INDEVIDO",
		"RETENCAO_INDEVIDA",
		"GESTAO_NEGOCIOS",
	},
	"ACORDO":      {"ACORDO_EXTRAJUDICIAL"},
	"INDENIZACAO": {"INDENIZACAO_CONTRATUAL", "INDENIZACAO_EXTRACONTRATUAL"},
	"CONVERSAO":   {"CONVERSAO_PERDAS_DANOS"},
	"CONDOMINIO":  {"COTAS_CONDOMINIAIS"},
	"CONSUMO":     {"SERVICOS_ESSENCIAIS", "MENSALIDADES"},
	"HONORARIOS":  {"HONORARIOS_CONTRATUAIS"},
}

// IsValidOrigemCategoria reports whether cat is one of the allowed categories.
func IsValidOrigemCategoria(cat string) bool {
	_, ok := origemPorCategoria[cat]
	return cat != "" && ok
}

// IsValidOrigemSubtipo reports whether sub belongs to the category cat.
func IsValidOrigemSubtipo(cat, sub string) bool {
	if !IsValidOrigemCategoria(cat) || sub == "" {
		return false
	}
	for _, s := range origemPorCategoria[cat] {
		if s == sub {
			return true
		}
	}
	return false
}
