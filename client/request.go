package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

const (
	contentTypeHeader = "Content-Type"
	jsonContentType   = "application/json"
	requestIDHeader   = "X-Request-Id"
)

// Request describes one logical API call. The zero value of NoAuth and NoRetry means the
// call is authenticated and may be refreshed-and-retried once on 401.
type Request struct {
	Method string
	// Path is absolute (http...) or relative to the client base URL
	Path  string
	Query url.Values
	// Body is nil, *Form, string, []byte, io.Reader or any JSON marshalable value
	Body    any
	Header  http.Header
	NoAuth  bool
	NoRetry bool
}

// Form is a multipart body; its Content-Type always carries the writer boundary.
type Form struct {
	Fields map[string]string
	Files  []*FormFile
}

// FormFile is a file part of a multipart body
type FormFile struct {
	Field   string
	Name    string
	Content io.Reader
}

func (f *Form) encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writer.WriteField(k, f.Fields[k]); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.Files {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", err
		}
		if file.Content != nil {
			if _, err = io.Copy(part, file.Content); err != nil {
				return nil, "", fmt.Errorf("failed to read form file %v: %w", file.Name, err)
			}
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

type encodedBody struct {
	reader      io.Reader
	contentType string
	multipart   bool
}

func encodeBody(body any) (*encodedBody, error) {
	switch actual := body.(type) {
	case nil:
		return &encodedBody{}, nil
	case *Form:
		if actual == nil {
			return &encodedBody{}, nil
		}
		reader, contentType, err := actual.encode()
		if err != nil {
			return nil, err
		}
		return &encodedBody{reader: reader, contentType: contentType, multipart: true}, nil
	case json.RawMessage:
		return &encodedBody{reader: bytes.NewReader(actual), contentType: jsonContentType}, nil
	case string:
		return &encodedBody{reader: strings.NewReader(actual)}, nil
	case []byte:
		return &encodedBody{reader: bytes.NewReader(actual)}, nil
	case io.Reader:
		return &encodedBody{reader: actual}, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return &encodedBody{reader: bytes.NewReader(data), contentType: jsonContentType}, nil
}

// apply sets the body content type: multipart always wins, JSON only when the caller set none.
func (e *encodedBody) apply(header http.Header) {
	switch {
	case e.contentType == "":
	case e.multipart:
		header.Set(contentTypeHeader, e.contentType)
	case header.Get(contentTypeHeader) == "":
		header.Set(contentTypeHeader, e.contentType)
	}
}
