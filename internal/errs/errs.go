// Package errs defines the error shape returned to API clients.
//
// Every failure that reaches the gateway boundary is converted into an
// HTTPError, which carries the HTTP status code and serializes into the
// {"msg": ..., "errType": ...} object of the response envelope.
package errs
