// Package server projects server lifecycle events into the relation store.
// A server is represented by a single ownership tuple; channels and roles
// that reference the server are independent lifecycle holders and are
// projected by their own packages.
package server

// CreateInput carries the fields of a server-created event.
type CreateInput struct {
	ServerID string
	OwnerID  string
}

// DeleteInput carries the fields of a server-deleted event.
type DeleteInput struct {
	ServerID string
}
