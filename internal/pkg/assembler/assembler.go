package assembler

import (
	"maps"

	"github.com/validalex/draft-backend/internal/entity"
)

// Assemble builds the response envelope from parsed model output. It never
// fails: a nil parsed value yields an envelope with empty sections.
//
// The evidence paragraph derived from documents is appended to the pedidos
// section once; running Assemble on its own output does not duplicate it.
func Assemble(parsed *entity.ParsedOutput, documents []string) *entity.Envelope {
	if parsed == nil {
		parsed = &entity.ParsedOutput{}
	}

	sections := parsed.Sections.Normalized()
	if p := EvidenceParagraph(documents); p != "" {
		sections.Pedidos = AppendParagraph(sections.Pedidos, p)
	}

	hasSections := sections.HasAnyText()
	html := parsed.HTML
	if html == "" && hasSections {
		html = BuildSectionsHTML(sections)
	}

	alerts := parsed.Alerts
	if alerts == nil {
		alerts = []entity.Alert{}
	}
	missing := parsed.Missing
	if missing == nil {
		missing = []entity.MissingField{}
	}

	meta := make(map[string]any, len(parsed.Meta)+1)
	maps.Copy(meta, parsed.Meta)
	meta["hasSections"] = hasSections

	return &entity.Envelope{
		OK:       parsed.OK,
		HTML:     html,
		Sections: sections,
		Alerts:   alerts,
		Missing:  missing,
		Meta:     meta,
	}
}
