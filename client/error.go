package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Error is the single failure shape surfaced by the client regardless of how the backend
// reported the problem. Status is 0 when no response was received.
type Error struct {
	Message string
	Status  int
	// Details is the normalized detail value, usually the decoded body
	Details any
	// Data is the raw decoded body
	Data any
	Err  error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// normalizer collapses one backend error shape into an Error, nil means no match
type normalizer func(payload Payload, fallback string) *Error

var normalizers = []normalizer{
	messageField,
	detailField,
	firstField,
	plainText,
}

func normalize(status int, payload Payload) *Error {
	fallback := fmt.Sprintf("request failed (HTTP %d)", status)
	ret := &Error{Message: fallback, Details: payload.Value}
	for _, candidate := range normalizers {
		if matched := candidate(payload, fallback); matched != nil {
			ret = matched
			break
		}
	}
	ret.Status = status
	ret.Data = payload.Value
	return ret
}

// messageField matches {"message": ..., "details": ...}
func messageField(payload Payload, fallback string) *Error {
	object, ok := payload.Value.(map[string]any)
	if !ok {
		return nil
	}
	message, ok := object["message"]
	if !ok {
		return nil
	}
	ret := &Error{Message: fallback, Details: payload.Value}
	if truthy(message) {
		ret.Message = stringify(message)
	}
	if details, ok := object["details"]; ok && details != nil {
		ret.Details = details
	}
	return ret
}

// detailField matches {"detail": ...}
func detailField(payload Payload, fallback string) *Error {
	object, ok := payload.Value.(map[string]any)
	if !ok {
		return nil
	}
	detail, ok := object["detail"]
	if !ok {
		return nil
	}
	ret := &Error{Message: fallback, Details: payload.Value}
	if truthy(detail) {
		ret.Message = stringify(detail)
	}
	return ret
}

// firstField matches field validation errors: {"email": ["This field is required."]}
func firstField(payload Payload, fallback string) *Error {
	object, ok := payload.Value.(map[string]any)
	if !ok || len(object) == 0 {
		return nil
	}
	key := firstKey(payload.raw)
	if _, ok = object[key]; !ok {
		return nil
	}
	value := object[key]
	if items, ok := value.([]any); ok && len(items) > 0 {
		value = items[0]
	}
	return &Error{Message: key + ": " + stringify(value), Details: payload.Value}
}

func plainText(payload Payload, fallback string) *Error {
	text, ok := payload.Value.(string)
	if !ok {
		return nil
	}
	ret := &Error{Message: strings.TrimSpace(text), Details: text}
	if ret.Message == "" {
		ret.Message = fallback
	}
	return ret
}

// firstKey returns the first key of a JSON object in document order
func firstKey(raw json.RawMessage) string {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	token, err := decoder.Token()
	if err != nil || token != json.Delim('{') {
		return ""
	}
	token, err = decoder.Token()
	if err != nil {
		return ""
	}
	key, _ := token.(string)
	return key
}

func truthy(value any) bool {
	switch actual := value.(type) {
	case nil:
		return false
	case bool:
		return actual
	case string:
		return actual != ""
	case float64:
		return actual != 0
	}
	return true
}

func stringify(value any) string {
	switch actual := value.(type) {
	case nil:
		return "null"
	case string:
		return actual
	case bool:
		return strconv.FormatBool(actual)
	case float64:
		return strconv.FormatFloat(actual, 'f', -1, 64)
	case []any:
		parts := make([]string, len(actual))
		for i, item := range actual {
			if item != nil {
				parts[i] = stringify(item)
			}
		}
		return strings.Join(parts, ",")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}

// StatusOf returns the HTTP status of a client error, 0 for transport or other errors
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a final 401
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}
