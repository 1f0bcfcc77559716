package client

import (
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBody(t *testing.T) {
	testCases := []struct {
		description string
		body        any
		header      http.Header
		expectType  string
		expectBody  string
	}{
		{description: "no body", body: nil, expectType: ""},
		{description: "struct as JSON", body: map[string]string{"content": "hi"}, expectType: "application/json", expectBody: `{"content":"hi"}`},
		{description: "caller content type kept", body: map[string]int{"index": 1}, header: http.Header{"Content-Type": {"application/vnd.memo+json"}}, expectType: "application/vnd.memo+json", expectBody: `{"index":1}`},
		{description: "string sent as is", body: "plain", expectType: "", expectBody: "plain"},
		{description: "bytes sent as is", body: []byte("raw"), expectType: "", expectBody: "raw"},
		{description: "raw JSON", body: json.RawMessage(`{"a":1}`), expectType: "application/json", expectBody: `{"a":1}`},
	}
	for _, testCase := range testCases {
		encoded, err := encodeBody(testCase.body)
		require.NoError(t, err, testCase.description)
		header := http.Header{}
		for k, v := range testCase.header {
			header[k] = v
		}
		encoded.apply(header)
		assert.Equal(t, testCase.expectType, header.Get("Content-Type"), testCase.description)
		if encoded.reader == nil {
			assert.Empty(t, testCase.expectBody, testCase.description)
			continue
		}
		data, err := io.ReadAll(encoded.reader)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expectBody, string(data), testCase.description)
	}
}

func TestEncodeBody_Multipart(t *testing.T) {
	form := &Form{
		Fields: map[string]string{"name": "Ann", "bio": "hello"},
		Files:  []*FormFile{{Field: "avatar", Name: "me.png", Content: strings.NewReader("PNG")}},
	}
	encoded, err := encodeBody(form)
	require.NoError(t, err)
	header := http.Header{"Content-Type": {"application/json"}}
	encoded.apply(header)

	mediaType, params, err := mime.ParseMediaType(header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType, "caller content type replaced")
	require.NotEmpty(t, params["boundary"])

	reader := multipart.NewReader(encoded.reader, params["boundary"])
	parsed, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann"}, parsed.Value["name"])
	assert.Equal(t, []string{"hello"}, parsed.Value["bio"])
	require.Len(t, parsed.File["avatar"], 1)
	assert.Equal(t, "me.png", parsed.File["avatar"][0].Filename)
}

func TestReadPayload(t *testing.T) {
	testCases := []struct {
		description string
		contentType string
		body        string
		expectJSON  bool
		expectValue any
	}{
		{description: "JSON object", contentType: "application/json; charset=utf-8", body: `{"ok":true}`, expectJSON: true, expectValue: map[string]any{"ok": true}},
		{description: "malformed JSON is absent", contentType: "application/json", body: `{"ok":`, expectValue: nil},
		{description: "empty JSON is absent", contentType: "application/json", body: ``, expectValue: nil},
		{description: "text", contentType: "text/html", body: `<h1>Bad Gateway</h1>`, expectValue: "<h1>Bad Gateway</h1>"},
		{description: "no content type", contentType: "", body: `{"ok":true}`, expectValue: `{"ok":true}`},
	}
	for _, testCase := range testCases {
		resp := &http.Response{
			Header: http.Header{"Content-Type": {testCase.contentType}},
			Body:   io.NopCloser(strings.NewReader(testCase.body)),
		}
		payload := readPayload(resp)
		assert.Equal(t, testCase.expectJSON, payload.IsJSON(), testCase.description)
		assert.Equal(t, testCase.expectValue, payload.Value, testCase.description)
	}

	var target struct{ OK bool }
	assert.NoError(t, Payload{}.Decode(&target), "absent body decodes to nothing")
	assert.False(t, target.OK)
}
