package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/validalex/draft-backend/internal/entity"
)

func TestEvidenceLabels(t *testing.T) {
	tests := []struct {
		name string
		docs []string
		want []string
	}{
		{name: "empty", docs: nil, want: nil},
		{name: "known codes", docs: []string{"contrato", "nota_fiscal"}, want: []string{"Contrato Assinado", "Nota Fiscal"}},
		{name: "case insensitive dedupe", docs: []string{"Contrato", "contrato", " CONTRATO "}, want: []string{"Contrato Assinado"}},
		{name: "unknown verbatim", docs: []string{"laudo_pericial"}, want: []string{"laudo_pericial"}},
		{name: "outros with detail", docs: []string{"outros", "outros: recibo manuscrito"}, want: []string{"Outros (recibo manuscrito)"}},
		{name: "detail without outros", docs: []string{"boleto", "outros:recibo"}, want: []string{"Boleto bancário"}},
		{name: "blank entries", docs: []string{"", "  "}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvidenceLabels(tt.docs))
		})
	}
}

func TestEvidenceParagraph(t *testing.T) {
	assert.Equal(t,
		"Protesta provar o alegado por todos os meios em direito admitidos, especialmente pela prova documental, consistente em: Contrato Assinado; E-mails de cobrança.",
		EvidenceParagraph([]string{"contrato", "email"}),
	)
	assert.Empty(t, EvidenceParagraph(nil))
}

func TestAppendParagraph(t *testing.T) {
	assert.Equal(t, "A\n\nB", AppendParagraph(" A ", "B"))
	assert.Equal(t, "B", AppendParagraph("", "B"))
	assert.Equal(t, "A", AppendParagraph("A", "  "))
	assert.Equal(t, "A\n\nB", AppendParagraph("A\n\nB", "B"))
}

func TestAssemble_EvidenceIsIdempotent(t *testing.T) {
	docs := []string{"contrato", "boleto"}
	parsed := &entity.ParsedOutput{
		OK:       true,
		Sections: entity.Sections{Pedidos: "a) a citação do réu;"},
	}

	once := Assemble(parsed, docs)
	twice := Assemble(&entity.ParsedOutput{OK: true, Sections: once.Sections}, docs)

	assert.Equal(t, once.Sections.Pedidos, twice.Sections.Pedidos)
	assert.Equal(t, 1, strings.Count(twice.Sections.Pedidos, "Protesta provar"))
	assert.True(t, strings.HasPrefix(once.Sections.Pedidos, "a) a citação do réu;\n\nProtesta provar"))
}

func TestAssemble_HTMLFallback(t *testing.T) {
	parsed := &entity.ParsedOutput{
		OK:       true,
		Sections: entity.Sections{Fatos: "Valor < 10 & > 5\nsegunda linha"},
	}

	env := Assemble(parsed, nil)

	assert.Equal(t, 1, strings.Count(env.HTML, "<h3"))
	assert.Equal(t, 1, strings.Count(env.HTML, `<div style="margin: 0 0 14px 0;">`))
	assert.Contains(t, env.HTML, ">Fatos</h3>")
	assert.Contains(t, env.HTML, "Valor &lt; 10 &amp; &gt; 5<br>segunda linha")
	for _, k := range entity.SectionKeys {
		if k != entity.SectionFatos {
			assert.NotContains(t, env.HTML, ">"+entity.SectionLabels[k]+"</h3>")
		}
	}
	assert.Equal(t, true, env.Meta["hasSections"])
}

func TestAssemble_ModelHTMLPassesThrough(t *testing.T) {
	parsed := &entity.ParsedOutput{
		OK:       true,
		HTML:     "<p>do modelo</p>",
		Sections: entity.Sections{Fatos: "x"},
	}

	env := Assemble(parsed, nil)

	assert.Equal(t, "<p>do modelo</p>", env.HTML)
}

func TestAssemble_Empty(t *testing.T) {
	env := Assemble(nil, nil)

	require.NotNil(t, env)
	assert.False(t, env.OK)
	assert.Empty(t, env.HTML)
	assert.Equal(t, entity.Sections{}, env.Sections)
	assert.NotNil(t, env.Alerts)
	assert.NotNil(t, env.Missing)
	assert.Equal(t, false, env.Meta["hasSections"])
}

func TestAssemble_KeepsParsedMeta(t *testing.T) {
	parsed := &entity.ParsedOutput{
		OK:     true,
		Alerts: []entity.Alert{{Level: entity.AlertLevelWarn, Code: "X", Message: "m"}},
		Meta:   map[string]any{"templateVersion": "cobranca_v1_2"},
	}

	env := Assemble(parsed, []string{"contrato"})

	assert.Equal(t, "cobranca_v1_2", env.Meta["templateVersion"])
	assert.Equal(t, parsed.Alerts, env.Alerts)
	assert.True(t, strings.HasPrefix(env.Sections.Pedidos, "Protesta provar"))
	_, touched := parsed.Meta["hasSections"]
	assert.False(t, touched)
}
