package events

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// decoder walks the fields of a single protobuf message. Unknown fields are
// skipped, matching standard proto semantics.
type decoder struct {
	data []byte
	err  error
}

func (d *decoder) next() (protowire.Number, protowire.Type, bool) {
	if d.err != nil || len(d.data) == 0 {
		return 0, 0, false
	}
	num, typ, n := protowire.ConsumeTag(d.data)
	if n < 0 {
		d.err = fmt.Errorf("consume tag: %w", protowire.ParseError(n))
		return 0, 0, false
	}
	d.data = d.data[n:]
	return num, typ, true
}

func (d *decoder) string(num protowire.Number, typ protowire.Type) string {
	if typ != protowire.BytesType {
		d.skip(num, typ)
		return ""
	}
	v, n := protowire.ConsumeString(d.data)
	if n < 0 {
		d.err = fmt.Errorf("consume string field %d: %w", num, protowire.ParseError(n))
		return ""
	}
	d.data = d.data[n:]
	return v
}

func (d *decoder) varint(num protowire.Number, typ protowire.Type) uint64 {
	if typ != protowire.VarintType {
		d.skip(num, typ)
		return 0
	}
	v, n := protowire.ConsumeVarint(d.data)
	if n < 0 {
		d.err = fmt.Errorf("consume varint field %d: %w", num, protowire.ParseError(n))
		return 0
	}
	d.data = d.data[n:]
	return v
}

func (d *decoder) skip(num protowire.Number, typ protowire.Type) {
	n := protowire.ConsumeFieldValue(num, typ, d.data)
	if n < 0 {
		d.err = fmt.Errorf("skip field %d: %w", num, protowire.ParseError(n))
		return
	}
	d.data = d.data[n:]
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func (m *CreateServer) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.ServerID)
	b = appendString(b, 2, m.OwnerID)
	return b, nil
}

func (m *CreateServer) UnmarshalBinary(data []byte) error {
	d := decoder{data: data}
	for {
		num, typ, ok := d.next()
		if !ok {
			return d.err
		}
		switch num {
		case 1:
			m.ServerID = d.string(num, typ)
		case 2:
			m.OwnerID = d.string(num, typ)
		default:
			d.skip(num, typ)
		}
	}
}

func (m *DeleteServer) MarshalBinary() ([]byte, error) {
	return appendString(nil, 1, m.ServerID), nil
}

func (m *DeleteServer) UnmarshalBinary(data []byte) error {
	d := decoder{data: data}
	for {
		num, typ, ok := d.next()
		if !ok {
			return d.err
		}
		if num == 1 {
			m.ServerID = d.string(num, typ)
		} else {
			d.skip(num, typ)
		}
	}
}

func (m *ChannelCreated) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.ChannelID)
	b = appendString(b, 2, m.ServerID)
	return b, nil
}

func (m *ChannelCreated) UnmarshalBinary(data []byte) error {
	d := decoder{data: data}
	for {
		num, typ, ok := d.next()
		if !ok {
			return d.err
		}
		switch num {
		case 1:
			m.ChannelID = d.string(num, typ)
		case 2:
			m.ServerID = d.string(num, typ)
		default:
			d.skip(num, typ)
		}
	}
}

func (m *ChannelDeleted) MarshalBinary() ([]byte, error) {
	return appendString(nil, 1, m.ChannelID), nil
}

func (m *ChannelDeleted) UnmarshalBinary(data []byte) error {
	d := decoder{data: data}
	for {
		num, typ, ok := d.next()
		if !ok {
			return d.err
		}
		if num == 1 {
			m.ChannelID = d.string(num, typ)
		} else {
			d.skip(num, typ)
		}
	}
}

func (m *UpsertRole) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.RoleID)
	b = appendString(b, 2, m.ServerID)
	b = appendVarint(b, 3, m.PermissionsBitmask)
	return b, nil
}

func (m *UpsertRole) UnmarshalBinary(data []byte) error {
	d := decoder{data: data}
	for {
		num, typ, ok := d.next()
		if !ok {
			return d.err
		}
		switch num {
		case 1:
			m.RoleID = d.string(num, typ)
		case 2:
			m.ServerID = d.string(num, typ)
		case 3:
			m.PermissionsBitmask = d.varint(num, typ)
		default:
			d.skip(num, typ)
		}
	}
}

func (m *DeleteRole) MarshalBinary() ([]byte, error) {
	return appendString(nil, 1, m.RoleID), nil
}

func (m *DeleteRole) UnmarshalBinary(data []byte) error {
	d := decoder{data: data}
	for {
		num, typ, ok := d.next()
		if !ok {
			return d.err
		}
		if num == 1 {
			m.RoleID = d.string(num, typ)
		} else {
			d.skip(num, typ)
		}
	}
}

func (m *MemberAssignedToRole) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.UserID)
	b = appendString(b, 2, m.RoleID)
	return b, nil
}

func (m *MemberAssignedToRole) UnmarshalBinary(data []byte) error {
	d := decoder{data: data}
	for {
		num, typ, ok := d.next()
		if !ok {
			return d.err
		}
		switch num {
		case 1:
			m.UserID = d.string(num, typ)
		case 2:
			m.RoleID = d.string(num, typ)
		default:
			d.skip(num, typ)
		}
	}
}

func (m *MemberRemovedFromRole) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.UserID)
	b = appendString(b, 2, m.RoleID)
	return b, nil
}

func (m *MemberRemovedFromRole) UnmarshalBinary(data []byte) error {
	d := decoder{data: data}
	for {
		num, typ, ok := d.next()
		if !ok {
			return d.err
		}
		switch num {
		case 1:
			m.UserID = d.string(num, typ)
		case 2:
			m.RoleID = d.string(num, typ)
		default:
			d.skip(num, typ)
		}
	}
}

func (m *UpsertPermissionOverride) MarshalBinary() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.OverrideID)
	b = appendString(b, 2, m.ChannelID)
	b = appendVarint(b, 3, m.PermissionBitmask)
	b = appendVarint(b, 4, uint64(m.Action))
	switch m.Target.Kind {
	case TargetUser:
		// Oneof fields are emitted even when empty so the variant survives
		// a round trip.
		b = protowire.AppendTag(b, 5, protowire.BytesType)
		b = protowire.AppendString(b, m.Target.ID)
	case TargetRole:
		b = protowire.AppendTag(b, 6, protowire.BytesType)
		b = protowire.AppendString(b, m.Target.ID)
	}
	return b, nil
}

func (m *UpsertPermissionOverride) UnmarshalBinary(data []byte) error {
	d := decoder{data: data}
	for {
		num, typ, ok := d.next()
		if !ok {
			return d.err
		}
		switch num {
		case 1:
			m.OverrideID = d.string(num, typ)
		case 2:
			m.ChannelID = d.string(num, typ)
		case 3:
			m.PermissionBitmask = d.varint(num, typ)
		case 4:
			m.Action = OverrideAction(d.varint(num, typ))
		case 5:
			m.Target = Target{Kind: TargetUser, ID: d.string(num, typ)}
		case 6:
			m.Target = Target{Kind: TargetRole, ID: d.string(num, typ)}
		default:
			d.skip(num, typ)
		}
	}
}

func (m *DeletePermissionOverride) MarshalBinary() ([]byte, error) {
	return appendString(nil, 1, m.OverrideID), nil
}

func (m *DeletePermissionOverride) UnmarshalBinary(data []byte) error {
	d := decoder{data: data}
	for {
		num, typ, ok := d.next()
		if !ok {
			return d.err
		}
		if num == 1 {
			m.OverrideID = d.string(num, typ)
		} else {
			d.skip(num, typ)
		}
	}
}
