// Package client talks to the authkeeper HTTP API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the CLI; HTTPClient is
// its JSON-over-HTTP implementation covering register, login, dashboard,
// logout and the health probe.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable. Non-2xx responses
// become *APIError values that carry the status code, the server's message
// and any per-field validation messages. 401 responses also match
// ErrUnauthorized via errors.Is.
package client
