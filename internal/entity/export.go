package entity

import "encoding/json"

type ExportFormat string

const (
	FormatDOCX     ExportFormat = "docx"
	FormatPDF      ExportFormat = "pdf"
	FormatMarkdown ExportFormat = "markdown"
)

func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatDOCX, FormatPDF, FormatMarkdown:
		return true
	default:
		return false
	}
}

type ExportDelivery string

const (
	DeliveryInline ExportDelivery = "inline"
	DeliveryURL    ExportDelivery = "url"
)

// ExportRequest is the body of the export routes. Sections stays raw so the
// validator can report missing keys and wrong types precisely.
type ExportRequest struct {
	Doc             ExportDoc      `json:"doc"`
	TemplateVersion string         `json:"templateVersion,omitempty"`
	Delivery        ExportDelivery `json:"delivery,omitempty"`
}

type ExportDoc struct {
	Sections  json.RawMessage `json:"sections"`
	LocalData string          `json:"localData,omitempty"`
	Signature *Signature      `json:"signature,omitempty"`
}

type Signature struct {
	Nome string `json:"nome,omitempty"`
	OAB  string `json:"oab,omitempty"`
}

// PetitionDocument is a validated document ready for rendering.
type PetitionDocument struct {
	Sections  Sections
	LocalData string
	Signature Signature
}

type ExportResult struct {
	OK          bool           `json:"ok"`
	Filename    string         `json:"filename"`
	ContentType string         `json:"contentType"`
	Size        int            `json:"size"`
	URL         string         `json:"url,omitempty"`
	Base64      string         `json:"base64,omitempty"`
	Meta        map[string]any `json:"meta"`
}

// StoredFile is an exported document kept in the ephemeral blob store.
type StoredFile struct {
	Name        string
	ContentType string
	Data        []byte
}
