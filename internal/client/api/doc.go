// Package api implements the HTTP client for the ItemDesk REST backend.
//
// A single generic request path serializes JSON bodies, attaches the bearer
// token when one is supplied, and normalizes every failure (transport or
// HTTP) into *Error with a Kind from a small fixed taxonomy. Typed methods
// (Login, ListItems, ...) fix the endpoint, verb and whether the token is
// attached.
//
// Idempotent GETs are retried with exponential backoff on transport errors
// and 5xx responses; mutating verbs are never retried. Every request runs
// under a bounded timeout derived from the client configuration.
package api
