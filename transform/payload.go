package transform

import (
	"bytes"
	"encoding/json"
)

// Envelope is the wrapped response form: {"status": {...}, "data": {...}}.
type Envelope struct {
	Status json.RawMessage `json:"status,omitempty"`
	Data   *Payload        `json:"data"`
}

// Payload is the body the transform consumes.
type Payload struct {
	Sheet     *Sheet   `json:"sheet"`
	Questions []Record `json:"questions"`
}

// Sheet describes the sheet and its order lists.
type Sheet struct {
	Config *SheetConfig `json:"config"`
}

// SheetConfig holds the order lists. A nil slice means the field was absent.
type SheetConfig struct {
	TopicOrder    []string `json:"topicOrder"`
	QuestionOrder []string `json:"questionOrder"`
}

// Record is one flat question record.
type Record struct {
	ID         string       `json:"_id"`
	Topic      string       `json:"topic"`
	SubTopic   string       `json:"subTopic,omitempty"`
	Title      string       `json:"title,omitempty"`
	Resource   string       `json:"resource,omitempty"`
	IsSolved   bool         `json:"isSolved,omitempty"`
	Definition *QuestionDef `json:"questionId,omitempty"`
}

// QuestionDef is the nested problem definition of a record.
type QuestionDef struct {
	Name       string `json:"name,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	ProblemURL string `json:"problemUrl,omitempty"`
	Platform   string `json:"platform,omitempty"`
}

// Decode parses raw as either an Envelope or a bare Payload and validates it.
func Decode(raw []byte) (*Payload, error) {
	var probe struct {
		Data  json.RawMessage `json:"data"`
		Sheet json.RawMessage `json:"sheet"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &ValidationError{Field: "payload", Reason: "not a JSON object", Err: err}
	}

	body := raw
	switch {
	case present(probe.Data):
		body = probe.Data
	case present(probe.Sheet):
		// direct {sheet, questions} body
	default:
		return nil, &ValidationError{Field: "payload", Reason: "data or sheet not found"}
	}

	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &ValidationError{Field: "data", Reason: "malformed", Err: err}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that every field the transform needs is present.
func (p *Payload) Validate() error {
	switch {
	case p == nil:
		return &ValidationError{Field: "payload", Reason: "missing"}
	case p.Sheet == nil || p.Sheet.Config == nil:
		return &ValidationError{Field: "sheet.config", Reason: "missing"}
	case p.Questions == nil:
		return &ValidationError{Field: "questions", Reason: "missing or not an array"}
	case p.Sheet.Config.TopicOrder == nil:
		return &ValidationError{Field: "sheet.config.topicOrder", Reason: "missing or not an array"}
	case p.Sheet.Config.QuestionOrder == nil:
		return &ValidationError{Field: "sheet.config.questionOrder", Reason: "missing or not an array"}
	}
	return nil
}

// present reports whether a raw JSON value is set and not null.
func present(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) > 0 && !bytes.Equal(v, []byte("null"))
}
