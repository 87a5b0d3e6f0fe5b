package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Payload is a response body as received. Bodies declared as JSON keep their
// raw bytes for typed decoding; everything else is raw text.
type Payload struct {
	Status int
	IsJSON bool
	Raw    []byte
}

func newPayload(resp *http.Response, raw []byte) (Payload, error) {
	p := Payload{
		Status: resp.StatusCode,
		IsJSON: strings.Contains(resp.Header.Get("Content-Type"), "application/json"),
		Raw:    raw,
	}
	if p.IsJSON && len(raw) > 0 && !json.Valid(raw) {
		return p, fmt.Errorf("response declared JSON but body is not valid JSON (status %d)", resp.StatusCode)
	}
	return p, nil
}

// OK reports a 2xx status.
func (p Payload) OK() bool {
	return p.Status >= 200 && p.Status < 300
}

func (p Payload) Text() string {
	return string(p.Raw)
}

// Decode unmarshals a JSON body into v. Text bodies are an error.
func (p Payload) Decode(v any) error {
	if !p.IsJSON {
		return fmt.Errorf("response is not JSON")
	}
	if len(p.Raw) == 0 {
		return nil
	}
	return json.Unmarshal(p.Raw, v)
}

// Data unmarshals the "data" member of a {data: ...} envelope into v. A body
// without data leaves v untouched.
func (p Payload) Data(v any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := p.Decode(&envelope); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// Message returns the "message" member when the body is a JSON object that
// carries a non-empty string message.
func (p Payload) Message() (string, bool) {
	if !p.IsJSON {
		return "", false
	}
	var body map[string]any
	if err := json.Unmarshal(p.Raw, &body); err != nil {
		return "", false
	}
	msg, ok := body["message"].(string)
	if !ok || msg == "" {
		return "", false
	}
	return msg, true
}
