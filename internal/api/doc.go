// Package api implements the HTTP layer of the inventory service: request
// parsing and validation, dispatch to the inventory service, and mapping of
// typed service errors to HTTP responses. Responses use the standard
// {message, data?} envelope.
package api
