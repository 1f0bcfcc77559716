// Package client implements the authenticated request client for the campus memo backend.
//
// Every call goes through a single contract: the request body is encoded (JSON, raw text
// or multipart), the session bearer token is attached, an expired access token is
// refreshed and the call replayed once, and a non-2xx response is collapsed into one
// normalized *Error regardless of the backend error shape.
//
// On top of Do the package provides the account operations: Login, Register, Me,
// UpdateProfile and Logout.
//
// Example:
//
//	cli, _ := client.New(client.WithBaseURL("http://127.0.0.1:8000"))
//	if _, err := cli.Login(ctx, "a@x.com", "secret"); err != nil {
//		return err
//	}
//	me, err := cli.Me(ctx, false)
package client
