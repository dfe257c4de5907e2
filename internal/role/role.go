// Package role projects role lifecycle and membership events into the
// relation store. A role's server-scope permissions are projected as
// server:<id>#<relation>@role:<id>#member tuples with replacement
// semantics: every upsert first clears the previously projected set.
package role

// UpsertInput carries the fields of a role created/updated event. The
// bitmask is the complete permission set of the role after the change.
type UpsertInput struct {
	RoleID             string
	ServerID           string
	PermissionsBitmask uint64
}

// DeleteInput carries the fields of a role-deleted event.
type DeleteInput struct {
	RoleID string
}

// MemberInput carries the fields of a membership change event.
type MemberInput struct {
	UserID string
	RoleID string
}
