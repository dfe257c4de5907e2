package events

import (
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestUpsertRoleRoundTrip(t *testing.T) {
	t.Parallel()

	in := UpsertRole{RoleID: "r1", ServerID: "srv_1", PermissionsBitmask: 0x88}
	data, err := in.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	var out UpsertRole
	if err := out.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestUpsertPermissionOverrideRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   UpsertPermissionOverride
	}{
		{"user allow", UpsertPermissionOverride{
			OverrideID: "ov1", ChannelID: "c1", PermissionBitmask: 0xC0,
			Action: OverrideActionAllow, Target: Target{Kind: TargetUser, ID: "u1"},
		}},
		{"role deny", UpsertPermissionOverride{
			OverrideID: "ov2", ChannelID: "c1", PermissionBitmask: 0x83,
			Action: OverrideActionDeny, Target: Target{Kind: TargetRole, ID: "rolX"},
		}},
		{"no target", UpsertPermissionOverride{
			OverrideID: "ov3", ChannelID: "c2", PermissionBitmask: 0x80,
			Action: OverrideActionAllow,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			data, err := tt.in.MarshalBinary()
			if err != nil {
				t.Fatal(err)
			}
			var out UpsertPermissionOverride
			if err := out.UnmarshalBinary(data); err != nil {
				t.Fatal(err)
			}
			if out != tt.in {
				t.Errorf("round trip = %+v, want %+v", out, tt.in)
			}
		})
	}
}

func TestUnmarshalMalformedPayload(t *testing.T) {
	t.Parallel()

	// Truncated length-delimited field: tag says a 255-byte string follows.
	bad := []byte{0x0a, 0xff}
	var m ChannelCreated
	if err := m.UnmarshalBinary(bad); err == nil {
		t.Error("UnmarshalBinary(truncated) = nil, want error")
	}

	var ov UpsertPermissionOverride
	if err := ov.UnmarshalBinary([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Error("UnmarshalBinary(garbage) = nil, want error")
	}
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	t.Parallel()

	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "srv_1")
	// A field this schema revision does not know about.
	b = protowire.AppendTag(b, 9, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, "user_1")

	var m CreateServer
	if err := m.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if m.ServerID != "srv_1" || m.OwnerID != "user_1" {
		t.Errorf("decoded = %+v", m)
	}
}

func TestEmptyPayloadDecodesToZeroValue(t *testing.T) {
	t.Parallel()

	var m UpsertRole
	if err := m.UnmarshalBinary(nil); err != nil {
		t.Fatal(err)
	}
	if m != (UpsertRole{}) {
		t.Errorf("decoded = %+v, want zero value", m)
	}

	var ov UpsertPermissionOverride
	if err := ov.UnmarshalBinary(nil); err != nil {
		t.Fatal(err)
	}
	if ov.Target.Kind != TargetNone {
		t.Errorf("zero payload target kind = %v, want TargetNone", ov.Target.Kind)
	}
}
