package transport

import (
	"bytes"
	"io"
	"net/http"
)

const maxDrain = 64 << 10

// clone copies r so it can be sent again, the body is buffered once and shared by every copy.
func clone(r *http.Request) (*http.Request, error) {
	cloned := r.Clone(r.Context())
	if r.Body == nil || r.Body == http.NoBody {
		return cloned, nil
	}
	if r.GetBody == nil {
		buf, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		if err != nil {
			return nil, err
		}
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(buf)), nil
		}
		r.Body, _ = r.GetBody()
	}
	body, err := r.GetBody()
	if err != nil {
		return nil, err
	}
	cloned.Body = body
	cloned.GetBody = r.GetBody
	return cloned, nil
}

func authorize(r *http.Request, accessToken string) {
	if accessToken == "" {
		return
	}
	r.Header.Set("Authorization", "Bearer "+accessToken)
}

// discard drains a bounded amount of the body so the connection can be reused.
func discard(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
	_ = resp.Body.Close()
}
