// Package session implements the client's session store.
//
// The [Store] owns the token pair and the derived status, persists tokens
// through a [TokenStore] (SQLite in production, fakes in tests), and is
// injected into the workflow controller and the HTTP layer rather than
// reached ambiently.
//
// Startup contract: after [Store.Initialize] returns the status is exactly
// Authenticated or Anonymous, even when durable storage is corrupt or
// unavailable. Storage failures at startup are swallowed and logged, never
// surfaced to the user.
//
// The store also implements [golang.org/x/oauth2.TokenSource], which is how
// every protected API call picks up the current access token.
package session
