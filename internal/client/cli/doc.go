// Package cli implements the interactive terminal front end of ItemDesk:
// a read–eval–print loop whose commands map one-to-one onto the pages of
// the web application (login, register, dashboard, profile, items).
//
// Command handlers stay thin: they gather input, call the session or item
// service, and print the result. Every item mutation is followed by a fresh
// list reload from the backend; no local snapshot is patched in place.
package cli
