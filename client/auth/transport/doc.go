// Package transport implements an http.RoundTripper that attaches the session's bearer
// token and, when the backend answers 401 Unauthorized, refreshes the access token once
// and replays the request once with the new token.
//
// Whether a call is authenticated and whether it may be retried is decided per request
// through the context helpers WithAuth and WithRetryOn401.
package transport
