// Package override projects per-channel permission overrides into the
// relation store. An override is a first-class permission_override object
// linking a channel, a target (user or role) and a set of channel-scope
// permissions, factored so that grant and deny stay expressible as relation
// traversals.
package override

// TargetKind discriminates override targets.
type TargetKind int

const (
	TargetUser TargetKind = iota + 1
	TargetRole
)

// Target is the subject an override applies to.
type Target struct {
	Kind TargetKind
	ID   string
}

// CreateInput carries the fields of an override created/updated event.
type CreateInput struct {
	OverrideID        string
	ChannelID         string
	PermissionBitmask uint64
	IsAllow           bool
	Target            Target
}

// DeleteInput carries the fields of an override-deleted event.
type DeleteInput struct {
	OverrideID string
}
