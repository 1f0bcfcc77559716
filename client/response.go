package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Response is a successful (2xx) call result
type Response struct {
	StatusCode int
	Header     http.Header
	Payload
}

// Payload is a decoded response body. JSON bodies are exposed as generic values, other
// bodies as text. Malformed JSON is treated as an absent body.
type Payload struct {
	// Value is the decoded JSON value, the text body, or nil when absent
	Value any
	raw   json.RawMessage
}

// Raw returns the JSON document or nil when the body was not valid JSON
func (p Payload) Raw() json.RawMessage {
	return p.raw
}

// IsJSON reports whether the body was a valid JSON document
func (p Payload) IsJSON() bool {
	return p.raw != nil
}

// Text returns the text body or the JSON document as text
func (p Payload) Text() string {
	if p.raw != nil {
		return string(p.raw)
	}
	if text, ok := p.Value.(string); ok {
		return text
	}
	return ""
}

// Decode unmarshals the JSON body into target, an absent body leaves target untouched
func (p Payload) Decode(target any) error {
	if p.raw == nil {
		return nil
	}
	return json.Unmarshal(p.raw, target)
}

func readPayload(resp *http.Response) Payload {
	data, err := io.ReadAll(resp.Body)
	contentType := strings.ToLower(resp.Header.Get(contentTypeHeader))
	if strings.Contains(contentType, jsonContentType) {
		if err != nil || len(bytes.TrimSpace(data)) == 0 {
			return Payload{}
		}
		var value any
		if json.Unmarshal(data, &value) != nil {
			return Payload{}
		}
		return Payload{Value: value, raw: data}
	}
	if err != nil {
		return Payload{Value: ""}
	}
	return Payload{Value: string(data)}
}
