// Package directus defines the client surface shared by the remote (HTTP)
// and local (database) Directus clients.
//
// # Overview
//
// Every verb on Requests issues at most one call against its transport and
// returns a response.Response: an *response.Entry for single records and an
// *response.EntryCollection for lists. Callers switch on the concrete type or
// use response.AsEntry / response.AsCollection.
//
// # Transports
//
//   - adapters/remote speaks to the REST API of a Directus server.
//   - adapters/local talks to the Directus database through a gateway.
//
// Both run outgoing data through the same field processor, so passwords are
// hashed and file references inlined before anything leaves the process.
//
// # Errors
//
// Remote calls answered with HTTP 401 fail with *UnauthorizedRequestError,
// which matches ErrUnauthorized. Other non-2xx answers fail with *HTTPError.
// Composite operations that lack required attributes fail with an error
// matching ErrValidation before any call is made.
package directus
