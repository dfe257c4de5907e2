// Package permissions holds the fixed community permission catalog and the
// translation from permission display names to relation names in the
// relation store.
package permissions

// Display is the wire-level display name of a permission, as carried in
// permission bitmasks produced by the communities API.
type Display string

// The full permission set. Bit values are part of the external contract and
// must never be renumbered.
const (
	Administrator    Display = "admin"
	ManageServer     Display = "manage"
	ManageRoles      Display = "manage_role"
	CreateInvitation Display = "create_invitation"
	ManageChannels   Display = "manage_channels"
	ManageWebhooks   Display = "manage_webhooks"
	ViewChannel      Display = "view_channel"
	SendMessage      Display = "send_message"
	ManageNicknames  Display = "manage_nicknames"
	ChangeNickname   Display = "change_nickname"
	ManageMessage    Display = "manage_message"
	AttachFiles      Display = "attach_files"
)

type entry struct {
	display Display
	bit     uint64
}

// Catalog maps permission display names to bitmask values. Iteration order
// is the fixed catalog order, so ParseBitmask output is deterministic.
type Catalog struct {
	entries []entry
	byName  map[Display]uint64
}

// New returns the catalog of the twelve community permissions.
func New() *Catalog {
	c := &Catalog{byName: make(map[Display]uint64)}
	for _, e := range []entry{
		{Administrator, 0x001},
		{ManageServer, 0x002},
		{ManageRoles, 0x004},
		{CreateInvitation, 0x008},
		{ManageChannels, 0x010},
		{ManageWebhooks, 0x020},
		{ViewChannel, 0x040},
		{SendMessage, 0x080},
		{ManageNicknames, 0x100},
		{ChangeNickname, 0x200},
		{ManageMessage, 0x400},
		{AttachFiles, 0x800},
	} {
		c.entries = append(c.entries, e)
		c.byName[e.display] = e.bit
	}
	return c
}

// ParseBitmask returns the display names of every catalog permission whose
// bit is set in bitmask, in catalog order. Bits that match no catalog entry
// are ignored.
func (c *Catalog) ParseBitmask(bitmask uint64) []Display {
	var names []Display
	for _, e := range c.entries {
		if bitmask&e.bit != 0 {
			names = append(names, e.display)
		}
	}
	return names
}

// Bit returns the bitmask value for a display name, or false if the name is
// not in the catalog.
func (c *Catalog) Bit(display Display) (uint64, bool) {
	bit, ok := c.byName[display]
	return bit, ok
}

// serverRelations maps server-scope permission display names to the relation
// name on the server object.
var serverRelations = map[Display]string{
	Administrator:    "administrator",
	ManageServer:     "server_manager",
	ManageRoles:      "role_manager",
	CreateInvitation: "invitation_creator",
	ManageChannels:   "channel_manager",
	ManageWebhooks:   "webhook_manager",
	ViewChannel:      "channel_viewer",
	SendMessage:      "message_sender",
	ManageNicknames:  "nickname_manager",
	ChangeNickname:   "nickname_changer",
	ManageMessage:    "message_manager",
	AttachFiles:      "file_attacher",
}

// channelScope is the subset of permissions enforced per channel rather than
// per server.
var channelScope = map[Display]bool{
	ManageWebhooks: true,
	ViewChannel:    true,
	SendMessage:    true,
	ManageMessage:  true,
	AttachFiles:    true,
}

// ServerRelation translates a permission display name to its relation name
// on the server object. It returns false for names outside the catalog.
func ServerRelation(display Display) (string, bool) {
	rel, ok := serverRelations[display]
	return rel, ok
}

// IsChannelScope reports whether a permission is enforced at the channel
// level.
func IsChannelScope(display Display) bool {
	return channelScope[display]
}

// ChannelRelation translates a channel-scope permission display name to the
// grant or deny relation name on the channel object, e.g. "send_message"
// becomes "send_message_grant" or "send_message_deny". It returns false for
// permissions that are not channel scope.
func ChannelRelation(display Display, isAllow bool) (string, bool) {
	if !channelScope[display] {
		return "", false
	}
	suffix := "_deny"
	if isAllow {
		suffix = "_grant"
	}
	return string(display) + suffix, true
}
