// Package mock provides an in-process fake of the memo backend that facilitates unit
// testing of the request client and the typed api services.
//
// The backend issues HS256 JWT token pairs, keeps users, posts, teams and todos in memory
// and exposes hooks to expire access tokens, reject refresh calls and inspect the traffic
// it received, so that the refresh-and-retry protocol can be exercised end to end.
package mock
