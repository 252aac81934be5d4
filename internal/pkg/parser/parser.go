package parser

import (
	"fmt"
	"strings"

	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/pkg/guidance"
)

// TemplateLoader resolves section guidance by template version.
type TemplateLoader interface {
	Load(version string) (*guidance.Template, error)
}

// Parser turns raw model text into the normalized seven-section output.
type Parser struct {
	templates      TemplateLoader
	defaultVersion string
}

// NewParser returns a Parser that falls back to defaultVersion when neither
// the caller nor the model names a template.
func NewParser(templates TemplateLoader, defaultVersion string) *Parser {
	if defaultVersion == "" {
		defaultVersion = guidance.DefaultTemplateVersion
	}
	return &Parser{templates: templates, defaultVersion: defaultVersion}
}

// Parse fails only when no JSON object can be recovered from raw or the
// object carries no "sections" object. Every other anomaly is reported as
// an alert.
//
// templateVersion is the version the prompt was built from. It wins over
// whatever the model echoes in meta.templateVersion.
func (p *Parser) Parse(raw, templateVersion string) (*entity.ParsedOutput, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, entity.ErrModelEmpty
	}

	obj := decodeObject(text)
	if obj == nil {
		if candidate := extractJSON(text); candidate != "" {
			obj = decodeObject(candidate)
		}
	}
	if obj == nil {
		return nil, entity.ErrModelOutputNotJSON
	}

	rawSections, ok := obj["sections"].(map[string]any)
	if !ok {
		return nil, entity.ErrModelOutputNoSections
	}

	meta, _ := obj["meta"].(map[string]any)
	if meta == nil {
		meta = map[string]any{}
	}
	templateVersion = strings.TrimSpace(templateVersion)
	if templateVersion == "" {
		echoed, _ := meta["templateVersion"].(string)
		templateVersion = strings.TrimSpace(echoed)
	}
	if templateVersion == "" {
		templateVersion = p.defaultVersion
	}
	meta["templateVersion"] = templateVersion

	sections := entity.SectionsFromMap(rawSections)

	alerts := modelAlerts(obj["alerts"])
	alerts = append(alerts, p.paragraphAlerts(sections, templateVersion)...)
	alerts = append(alerts, emptySectionAlerts(sections)...)

	html, _ := obj["html"].(string)

	return &entity.ParsedOutput{
		OK:       true,
		HTML:     html,
		Sections: sections,
		Alerts:   alerts,
		Missing:  modelMissing(obj["missing"]),
		Meta:     meta,
	}, nil
}

// paragraphAlerts checks each non-empty section against the bounds its
// template declares. A template that fails to load yields no alerts.
func (p *Parser) paragraphAlerts(sections entity.Sections, templateVersion string) []entity.Alert {
	if p.templates == nil {
		return nil
	}
	tpl, err := p.templates.Load(templateVersion)
	if err != nil {
		return nil
	}

	var alerts []entity.Alert
	for _, k := range entity.SectionKeys {
		text := sections.Get(k)
		cfg, ok := tpl.For(k)
		// Empty sections are reported once by emptySectionAlerts.
		if !ok || text == "" {
			continue
		}

		count := len(SplitParagraphs(text))
		if cfg.MinParagraphs > 0 && count < cfg.MinParagraphs {
			alerts = append(alerts, entity.Alert{
				Level:   entity.AlertLevelWarn,
				Code:    entity.AlertParagraphTooShort,
				Message: fmt.Sprintf("A seção '%s' possui apenas %d parágrafos (mínimo: %d).", k, count, cfg.MinParagraphs),
			})
		}
		if cfg.MaxParagraphs > 0 && count > cfg.MaxParagraphs {
			alerts = append(alerts, entity.Alert{
				Level:   entity.AlertLevelWarn,
				Code:    entity.AlertParagraphTooLong,
				Message: fmt.Sprintf("A seção '%s' possui %d parágrafos (máximo: %d).", k, count, cfg.MaxParagraphs),
			})
		}
	}
	return alerts
}

func emptySectionAlerts(sections entity.Sections) []entity.Alert {
	var alerts []entity.Alert
	for _, k := range entity.SectionKeys {
		if sections.Get(k) == "" {
			alerts = append(alerts, entity.Alert{
				Level:   entity.AlertLevelWarn,
				Code:    entity.AlertEmptySection,
				Message: fmt.Sprintf("A seção '%s' está vazia ou não foi gerada pelo modelo.", k),
			})
		}
	}
	return alerts
}

func modelAlerts(v any) []entity.Alert {
	list, ok := v.([]any)
	if !ok {
		return []entity.Alert{}
	}

	out := make([]entity.Alert, 0, len(list))
	for _, item := range list {
		m, _ := item.(map[string]any)
		level, _ := m["level"].(string)
		code, _ := m["code"].(string)
		msg, _ := m["message"].(string)
		if code == "" {
			code = entity.AlertModelDefault
		}
		if msg == "" {
			msg = "Alerta retornado pelo modelo."
		}
		out = append(out, entity.Alert{Level: entity.ParseAlertLevel(level), Code: code, Message: msg})
	}
	return out
}

// modelMissing keeps the entries the model reported as {path, label}
// objects and drops anything else.
func modelMissing(v any) []entity.MissingField {
	out := []entity.MissingField{}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		path, _ := m["path"].(string)
		label, _ := m["label"].(string)
		if path == "" && label == "" {
			continue
		}
		out = append(out, entity.MissingField{Path: path, Label: label})
	}
	return out
}
