package assembler

import (
	"strings"

	"github.com/validalex/draft-backend/internal/entity"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func nl2br(s string) string {
	return strings.ReplaceAll(escapeHTML(s), "\n", "<br>")
}

// BuildSectionsHTML renders the non-empty sections in canonical order as a
// minimal, deterministic HTML fragment.
func BuildSectionsHTML(sections entity.Sections) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; font-size: 14px; line-height: 1.5;">`)

	for _, k := range entity.SectionKeys {
		text := strings.TrimSpace(sections.Get(k))
		if text == "" {
			continue
		}
		b.WriteString(`<h3 style="margin: 18px 0 8px 0;">`)
		b.WriteString(escapeHTML(entity.SectionLabels[k]))
		b.WriteString(`</h3><div style="margin: 0 0 14px 0;">`)
		b.WriteString(nl2br(text))
		b.WriteString(`</div>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}
