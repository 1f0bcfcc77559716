package transport

import (
	"net/http"
)

// cookieWrap attaches cookies from a jar before delegating and stores response cookies
// back, for backends that authenticate some endpoints by session cookie.
type cookieWrap struct {
	inner http.RoundTripper
	jar   http.CookieJar
}

// WrapWithCookieJar wraps inner so cookies from jar are sent and updated on every exchange.
func WrapWithCookieJar(inner http.RoundTripper, jar http.CookieJar) http.RoundTripper {
	if jar == nil || inner == nil {
		return inner
	}
	return &cookieWrap{inner: inner, jar: jar}
}

func (w *cookieWrap) RoundTrip(req *http.Request) (*http.Response, error) {
	outbound := req.Clone(req.Context())
	for _, c := range w.jar.Cookies(outbound.URL) {
		outbound.AddCookie(c)
	}
	resp, err := w.inner.RoundTrip(outbound)
	if err != nil {
		return nil, err
	}
	if cookies := resp.Cookies(); len(cookies) > 0 {
		w.jar.SetCookies(outbound.URL, cookies)
	}
	return resp, nil
}
