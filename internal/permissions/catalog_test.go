package permissions

import (
	"slices"
	"testing"
)

func TestParseBitmask(t *testing.T) {
	t.Parallel()

	c := New()

	tests := []struct {
		name    string
		bitmask uint64
		want    []Display
	}{
		{"empty", 0, nil},
		{"single bit", 0x1, []Display{Administrator}},
		{"two bits", 0x88, []Display{CreateInvitation, SendMessage}},
		{"all bits", 0xFFF, []Display{
			Administrator, ManageServer, ManageRoles, CreateInvitation,
			ManageChannels, ManageWebhooks, ViewChannel, SendMessage,
			ManageNicknames, ChangeNickname, ManageMessage, AttachFiles,
		}},
		{"unknown bits ignored", 0xF000, nil},
		{"known and unknown mixed", 0x1001, []Display{Administrator}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := c.ParseBitmask(tt.bitmask)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseBitmask(%#x) = %v, want %v", tt.bitmask, got, tt.want)
			}
		})
	}
}

func TestParseBitmaskOrderIsCatalogOrder(t *testing.T) {
	t.Parallel()

	c := New()

	// 0x88 sets send_message (0x80) and create_invitation (0x8);
	// create_invitation comes first in the catalog regardless of bit value.
	got := c.ParseBitmask(0x88)
	want := []Display{CreateInvitation, SendMessage}
	if !slices.Equal(got, want) {
		t.Errorf("ParseBitmask(0x88) = %v, want %v", got, want)
	}
}

func TestServerRelation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		display Display
		want    string
	}{
		{Administrator, "administrator"},
		{ManageServer, "server_manager"},
		{ManageRoles, "role_manager"},
		{CreateInvitation, "invitation_creator"},
		{ManageChannels, "channel_manager"},
		{ManageWebhooks, "webhook_manager"},
		{ViewChannel, "channel_viewer"},
		{SendMessage, "message_sender"},
		{ManageNicknames, "nickname_manager"},
		{ChangeNickname, "nickname_changer"},
		{ManageMessage, "message_manager"},
		{AttachFiles, "file_attacher"},
	}

	for _, tt := range tests {
		got, ok := ServerRelation(tt.display)
		if !ok || got != tt.want {
			t.Errorf("ServerRelation(%q) = %q, %v, want %q, true", tt.display, got, ok, tt.want)
		}
	}

	if rel, ok := ServerRelation("unknown"); ok {
		t.Errorf("ServerRelation(unknown) = %q, want none", rel)
	}
}

func TestIsChannelScope(t *testing.T) {
	t.Parallel()

	channel := []Display{ManageWebhooks, ViewChannel, SendMessage, ManageMessage, AttachFiles}
	server := []Display{Administrator, ManageServer, ManageRoles, CreateInvitation, ManageChannels, ManageNicknames, ChangeNickname}

	for _, d := range channel {
		if !IsChannelScope(d) {
			t.Errorf("IsChannelScope(%q) = false, want true", d)
		}
	}
	for _, d := range server {
		if IsChannelScope(d) {
			t.Errorf("IsChannelScope(%q) = true, want false", d)
		}
	}
}

func TestChannelRelation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		display Display
		isAllow bool
		want    string
		wantOK  bool
	}{
		{SendMessage, true, "send_message_grant", true},
		{SendMessage, false, "send_message_deny", true},
		{ViewChannel, true, "view_channel_grant", true},
		{ViewChannel, false, "view_channel_deny", true},
		{ManageMessage, true, "manage_message_grant", true},
		{AttachFiles, false, "attach_files_deny", true},
		{ManageWebhooks, true, "manage_webhooks_grant", true},
		{Administrator, true, "", false},
		{ManageRoles, false, "", false},
		{"unknown", true, "", false},
	}

	for _, tt := range tests {
		got, ok := ChannelRelation(tt.display, tt.isAllow)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ChannelRelation(%q, %v) = %q, %v, want %q, %v",
				tt.display, tt.isAllow, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestBit(t *testing.T) {
	t.Parallel()

	c := New()
	if bit, ok := c.Bit(SendMessage); !ok || bit != 0x80 {
		t.Errorf("Bit(send_message) = %#x, %v, want 0x80, true", bit, ok)
	}
	if _, ok := c.Bit("unknown"); ok {
		t.Error("Bit(unknown) = ok, want not found")
	}
}
