package authzed

import (
	"testing"

	v1 "github.com/authzed/authzed-go/proto/authzed/api/v1"
)

func TestTupleString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rel  *v1.Relationship
		want string
	}{
		{
			"plain subject",
			Tuple(Object(TypeServer, "srv_1"), "owner", Subject(TypeUser, "user_1")),
			"server:srv_1#owner@user:user_1",
		},
		{
			"subject with relation",
			Tuple(Object(TypeServer, "srv_1"), "message_sender", SubjectWithRelation(TypeRole, "r1", "member")),
			"server:srv_1#message_sender@role:r1#member",
		},
		{
			"override subject",
			Tuple(Object(TypeChannel, "c1"), "send_message_grant", SubjectWithRelation(TypeOverride, "ov1", "granted_to")),
			"channel:c1#send_message_grant@permission_override:ov1#granted_to",
		},
		{"nil", nil, "<invalid tuple>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TupleString(tt.rel); got != tt.want {
				t.Errorf("TupleString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpdateOperations(t *testing.T) {
	t.Parallel()

	rel := Tuple(Object(TypeRole, "r1"), "member", Subject(TypeUser, "u1"))

	if op := Create(rel).Operation; op != v1.RelationshipUpdate_OPERATION_CREATE {
		t.Errorf("Create operation = %v, want CREATE", op)
	}
	if op := Touch(rel).Operation; op != v1.RelationshipUpdate_OPERATION_TOUCH {
		t.Errorf("Touch operation = %v, want TOUCH", op)
	}
	if op := Delete(rel).Operation; op != v1.RelationshipUpdate_OPERATION_DELETE {
		t.Errorf("Delete operation = %v, want DELETE", op)
	}

	// Operation enum values are part of the wire contract.
	if v1.RelationshipUpdate_OPERATION_CREATE != 1 ||
		v1.RelationshipUpdate_OPERATION_TOUCH != 2 ||
		v1.RelationshipUpdate_OPERATION_DELETE != 3 {
		t.Error("relationship update operation enum values changed")
	}
}

func TestSubjectScopedFilter(t *testing.T) {
	t.Parallel()

	f := SubjectScopedFilter(TypeServer, TypeRole, "r1", "member")
	if f.ResourceType != TypeServer {
		t.Errorf("ResourceType = %q, want %q", f.ResourceType, TypeServer)
	}
	sf := f.OptionalSubjectFilter
	if sf == nil || sf.SubjectType != TypeRole || sf.OptionalSubjectId != "r1" {
		t.Fatalf("subject filter = %+v, want role r1", sf)
	}
	if sf.OptionalRelation == nil || sf.OptionalRelation.Relation != "member" {
		t.Errorf("subject relation filter = %+v, want member", sf.OptionalRelation)
	}

	// Empty subject relation means any subject relation matches, so no
	// relation filter must be set.
	f = SubjectScopedFilter(TypeChannel, TypeOverride, "ov1", "")
	if f.OptionalSubjectFilter.OptionalRelation != nil {
		t.Errorf("relation filter = %+v, want nil", f.OptionalSubjectFilter.OptionalRelation)
	}
}
