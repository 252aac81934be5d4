package entity

// Prompt is the instruction pair sent to the text-generation service.
type Prompt struct {
	System string     `json:"system"`
	User   string     `json:"user"`
	Meta   PromptMeta `json:"meta"`
}

type PromptMeta struct {
	PromptVersion   string `json:"promptVersion"`
	TemplateVersion string `json:"templateVersion"`
}

// ModelOutput is the raw text returned by a ModelClient.
type ModelOutput struct {
	Text      string `json:"text"`
	Model     string `json:"model"`
	ElapsedMs int64  `json:"elapsedMs"`
	Truncated bool   `json:"truncated"`
}

// ParsedOutput is the normalized model output.
type ParsedOutput struct {
	OK       bool
	HTML     string
	Sections Sections
	Alerts   []Alert
	Missing  []MissingField
	Meta     map[string]any
}

// Envelope is the only draft contract exposed across the HTTP boundary.
type Envelope struct {
	OK       bool           `json:"ok"`
	HTML     string         `json:"html"`
	Sections Sections       `json:"sections"`
	Alerts   []Alert        `json:"alerts"`
	Missing  []MissingField `json:"missing"`
	Meta     map[string]any `json:"meta"`
}

// ErrorEnvelope is a degraded envelope describing a failed request.
type ErrorEnvelope struct {
	Envelope
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewDegradedEnvelope returns an envelope with empty sections that carries
// the given alerts and missing fields.
func NewDegradedEnvelope(alerts []Alert, missing []MissingField, meta map[string]any) *Envelope {
	if alerts == nil {
		alerts = []Alert{}
	}
	if missing == nil {
		missing = []MissingField{}
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return &Envelope{
		OK:       false,
		HTML:     "",
		Sections: Sections{},
		Alerts:   alerts,
		Missing:  missing,
		Meta:     meta,
	}
}
