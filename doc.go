// Package memo assembles the campus memo backend client.
//
// It glues the session store (memory, file or scy-encrypted file storage), the
// authenticating transport with its single refresh-and-retry cycle, prometheus metrics and
// zap logging into a ready to use request client and typed api service. The entry point
// is New, which accepts an Options structure that can be populated from CLI flags or
// a configuration file.
//
// Example:
//
//	m, _ := memo.New(ctx, &memo.Options{BaseURL: "http://127.0.0.1:8000", Session: memo.SessionOptions{URL: "~/.memo/session.json"}})
//	if _, err := m.Client.Login(ctx, "a@x.edu.cn", "secret"); err != nil {
//		return err
//	}
//	posts, err := m.API.ListPosts(ctx)
package memo
