// Package client is the transport between the admin engine and the backend
// REST service.
//
// # Overview
//
// Client is the contract: list, create, update and remove records of a
// resource, check a value for uniqueness, approve a membership application,
// and log in. HTTPClient implements it over net/http with multipart bodies
// for create and update. Every request carries the configured default
// headers, a fresh X-Request-ID and, when a TokenProvider yields one, a
// bearer token.
//
// # Errors
//
// A request that produced no response fails with *NetworkError. A response
// with status 4xx or 5xx fails with *ServerError, which matches
// ErrUnauthorized for 401 and 403. A successful create or update whose body
// holds no identifiable record fails with ErrNoRecord. Describe turns any of
// these into the single line shown to the user.
//
// The transport never retries; callers decide what to do with a failure.
package client
