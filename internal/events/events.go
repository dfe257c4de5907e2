// Package events defines the domain events consumed from the broker and
// their protobuf wire codec. The schema is documented in
// api/proto/communities_events.proto; the codec here is hand-rolled over
// protowire because the schema is small and has no nested messages.
package events

// CreateServer announces a newly created community server.
type CreateServer struct {
	ServerID string
	OwnerID  string
}

// DeleteServer announces a deleted community server.
type DeleteServer struct {
	ServerID string
}

// ChannelCreated announces a channel created inside a server.
type ChannelCreated struct {
	ChannelID string
	ServerID  string
}

// ChannelDeleted announces a deleted channel.
type ChannelDeleted struct {
	ChannelID string
}

// UpsertRole announces a created or updated role. The bitmask carries the
// full permission set of the role; processing replaces any previously
// projected permissions.
type UpsertRole struct {
	RoleID             string
	ServerID           string
	PermissionsBitmask uint64
}

// DeleteRole announces a deleted role.
type DeleteRole struct {
	RoleID string
}

// MemberAssignedToRole announces a user added to a role.
type MemberAssignedToRole struct {
	UserID string
	RoleID string
}

// MemberRemovedFromRole announces a user removed from a role.
type MemberRemovedFromRole struct {
	UserID string
	RoleID string
}

// OverrideAction selects whether a permission override grants or denies.
type OverrideAction int32

const (
	OverrideActionUnspecified OverrideAction = 0
	OverrideActionAllow       OverrideAction = 1
	OverrideActionDeny        OverrideAction = 2
)

// String returns the proto enum value name.
func (a OverrideAction) String() string {
	switch a {
	case OverrideActionAllow:
		return "ALLOW"
	case OverrideActionDeny:
		return "DENY"
	default:
		return "UNSPECIFIED"
	}
}

// TargetKind discriminates the override target oneof.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetUser
	TargetRole
)

// Target is the subject a permission override applies to: a user or a role.
// The zero value means the event carried no target.
type Target struct {
	Kind TargetKind
	ID   string
}

// UpsertPermissionOverride announces a created or updated per-channel
// permission override.
type UpsertPermissionOverride struct {
	OverrideID        string
	ChannelID         string
	PermissionBitmask uint64
	Action            OverrideAction
	Target            Target
}

// DeletePermissionOverride announces a deleted permission override.
type DeletePermissionOverride struct {
	OverrideID string
}
