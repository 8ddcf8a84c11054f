// Package services defines the [Service] interface for the Intelligent Insure
// backend and implements it over JSON/HTTPS.
//
// # Network contract
//
// Three endpoints, all POST:
//   - /api/auth/register/ : create an account, body ignored on success
//   - /api/auth/token/ : exchange credentials for {access, refresh}
//   - /api/recommendations/ : profile in, recommendation out (protected)
//
// # Bearer attachment
//
// Protected endpoints go through a client whose transport is an
// [oauth2.Transport] fed by the session store's token source, so the
// Authorization header is applied in one place for every current and future
// protected call.
//
// # Error normalization
//
// Every non-2xx response is parsed once into an [APIError] holding either a
// single detail string or a field→messages map. [ErrorMessage] resolves any
// error from this package, transport failures included, into the one string a
// screen should display.
//
// Calls make exactly one attempt. Timeouts are whatever the injected
// [net/http.Client] enforces; a timeout surfaces like any other transport
// failure.
package services
