// Package session holds the client side session state: the access/refresh token pair,
// the cached identity of the signed-in user and, optionally, backend session cookies.
//
// State lives in a string keyed Storage, the in-memory default is enough for tests and
// one-shot tools; FileStorage and SecureStorage persist the same entries through
// viant/afs, the latter encrypting them with viant/scy.
package session
