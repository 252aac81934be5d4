package prompt

import (
	"fmt"
	"strings"

	"github.com/validalex/draft-backend/internal/entity"
)

var directionRules = []string{
	"Validade da relação obrigacional: CC art. 104; arts. 421 e 422 apenas em nível geral; pacta sunt servanda.",
	"Natureza da obrigação e exigibilidade: obrigação líquida, certa e com termo de vencimento.",
	"Inadimplemento e mora: CC art. 397 (mora ex re), distinguindo mora de inadimplemento absoluto.",
	"Consequências do inadimplemento: CC arts. 389 e 395; não fixar índice, taxa ou termo inicial sem dado do input.",
	"Ônus da prova: CPC art. 373, antecipando defesas típicas sem inventar fatos.",
	"Requisitos da petição inicial: CPC art. 319 e adequação da via eleita.",
	"Honorários sucumbenciais: CPC art. 85, sem quantificar.",
	"Fecho lógico ligando fatos, norma e pedidos.",
}

func systemPrompt(meta entity.PromptMeta) string {
	var b strings.Builder

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("Você é um assistente jurídico sênior, especialista em Processo Civil brasileiro.")
	line("Redija um RASCUNHO técnico e revisável de uma AÇÃO DE COBRANÇA, destinado à revisão de um advogado.")
	line("")
	line("REGRAS OBRIGATÓRIAS:")
	line("- Não invente fatos, datas, valores, partes, documentos ou eventos.")
	line("- Não estime nem calcule valores, juros, índices ou datas.")
	line("- Não cite jurisprudência específica (número de processo, relator, data ou tribunal identificado).")
	line("  Use apenas referências genéricas, como 'entendimento jurisprudencial consolidado'.")
	line("- Use somente as informações de inputData.")
	line("- Se faltar algo essencial, escreva literalmente: %s.", PendingPlaceholder)
	line("")
	line("ESTILO:")
	line("- Linguagem formal, técnica e conservadora, com parágrafos de 4 a 6 linhas.")
	line("- Argumentação encadeada: cada parágrafo se conecta ao anterior.")
	line("- Separe parágrafos com uma linha em branco.")
	line("- Respeite os limites de parágrafos de sectionGuidance.")
	line("")
	line("ESTRUTURA OBRIGATÓRIA (nesta ordem):")
	for _, k := range entity.SectionKeys {
		line("- %s (%s)", entity.SectionLabels[k], k)
	}
	line("")
	line("SEÇÃO 'DO DIREITO': o título é exatamente 'DO DIREITO'. Um item por parágrafo, sem repetir ideias:")
	for i, r := range directionRules {
		line("  %d. %s", i+1, r)
	}
	line("")
	line("SAÍDA: responda EXCLUSIVAMENTE com um objeto JSON válido, sem markdown e sem texto fora do JSON, no formato:")
	line(`{"sections":{"enderecamento":"string","qualificacao":"string","fatos":"string","direito":"string","pedidos":"string","valor_causa":"string","requerimentos_finais":"string"},`)
	line(`"alerts":[{"level":"info|warn|error","code":"string","message":"string"}],`)
	fmt.Fprintf(&b, `"meta":{"promptVersion":%q,"templateVersion":%q}}`, meta.PromptVersion, meta.TemplateVersion)

	return b.String()
}
