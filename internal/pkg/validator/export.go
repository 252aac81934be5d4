package validator

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/validalex/draft-backend/internal/entity"
)

// ValidateExportSections checks that raw is an object with all seven section
// keys as strings and at least one of them non-blank. Section texts are
// returned untrimmed; renderers decide how to lay them out.
func ValidateExportSections(raw json.RawMessage) (entity.Sections, error) {
	var out entity.Sections

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return out, fmt.Errorf("%w: doc.sections ausente ou inválido (esperado OBJETO)", entity.ErrInvalidSections)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out, fmt.Errorf("%w: doc.sections ausente ou inválido (esperado OBJETO)", entity.ErrInvalidSections)
	}

	for _, k := range entity.SectionKeys {
		v, ok := fields[string(k)]
		if !ok {
			return out, fmt.Errorf("%w: doc.sections inválido: chave ausente '%s'", entity.ErrInvalidSections, k)
		}
		// null decodes into a string without error, so check the token.
		v = bytes.TrimSpace(v)
		if len(v) == 0 || v[0] != '"' {
			return out, fmt.Errorf("%w: doc.sections inválido: '%s' deve ser string", entity.ErrInvalidSections, k)
		}
		var text string
		if err := json.Unmarshal(v, &text); err != nil {
			return out, fmt.Errorf("%w: doc.sections inválido: '%s' deve ser string", entity.ErrInvalidSections, k)
		}
		out.Set(k, text)
	}

	if !out.HasAnyText() {
		return out, fmt.Errorf("%w: doc.sections está vazio, gere o rascunho novamente antes de exportar", entity.ErrInvalidSections)
	}
	return out, nil
}

// ValidateExportRequest validates the body of an export route and turns it
// into a renderable document.
func ValidateExportRequest(req *entity.ExportRequest) (*entity.PetitionDocument, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: doc", entity.ErrMissingField)
	}
	switch req.Delivery {
	case "", entity.DeliveryInline, entity.DeliveryURL:
	default:
		return nil, fmt.Errorf("%w: delivery %q (allowed: inline, url)", entity.ErrInvalidParameter, req.Delivery)
	}

	sections, err := ValidateExportSections(req.Doc.Sections)
	if err != nil {
		return nil, err
	}

	doc := &entity.PetitionDocument{
		Sections:  sections,
		LocalData: req.Doc.LocalData,
	}
	if req.Doc.Signature != nil {
		doc.Signature = *req.Doc.Signature
	}
	return doc, nil
}
