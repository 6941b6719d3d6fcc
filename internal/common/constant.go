// Package common contains constants and sentinel errors shared by the admin
// client and the development backend.
package common

// Header names exchanged between the client and the backend.
const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
	BearerPrefix        = "Bearer "
)
