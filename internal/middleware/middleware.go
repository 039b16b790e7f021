// Package middleware stores the middleware of the local gateway emulator.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request-scoped logging, New Relic tracing, CORS, request
// logging and panic recovery.
package middleware
