package authzed

import (
	"fmt"

	v1 "github.com/authzed/authzed-go/proto/authzed/api/v1"
)

// Object types of the community relation graph. These are part of the
// relation-store schema contract.
const (
	TypeServer   = "server"
	TypeChannel  = "channel"
	TypeRole     = "role"
	TypeUser     = "user"
	TypeOverride = "permission_override"
)

// Object returns an object reference for the given type and id.
func Object(objectType, objectID string) *v1.ObjectReference {
	return &v1.ObjectReference{
		ObjectType: objectType,
		ObjectId:   objectID,
	}
}

// Subject returns a subject reference without a subject relation.
func Subject(objectType, objectID string) *v1.SubjectReference {
	return &v1.SubjectReference{Object: Object(objectType, objectID)}
}

// SubjectWithRelation returns a subject reference scoped to a relation on
// the subject object, e.g. role:r1#member.
func SubjectWithRelation(objectType, objectID, relation string) *v1.SubjectReference {
	return &v1.SubjectReference{
		Object:           Object(objectType, objectID),
		OptionalRelation: relation,
	}
}

// Tuple assembles a relationship resource#relation@subject.
func Tuple(resource *v1.ObjectReference, relation string, subject *v1.SubjectReference) *v1.Relationship {
	return &v1.Relationship{
		Resource: resource,
		Relation: relation,
		Subject:  subject,
	}
}

// Create wraps a relationship in an update with the CREATE operation.
func Create(rel *v1.Relationship) *v1.RelationshipUpdate {
	return &v1.RelationshipUpdate{
		Operation:    v1.RelationshipUpdate_OPERATION_CREATE,
		Relationship: rel,
	}
}

// Touch wraps a relationship in an update with the TOUCH operation, which
// upserts without failing on duplicates.
func Touch(rel *v1.Relationship) *v1.RelationshipUpdate {
	return &v1.RelationshipUpdate{
		Operation:    v1.RelationshipUpdate_OPERATION_TOUCH,
		Relationship: rel,
	}
}

// Delete wraps a relationship in an update with the DELETE operation.
func Delete(rel *v1.Relationship) *v1.RelationshipUpdate {
	return &v1.RelationshipUpdate{
		Operation:    v1.RelationshipUpdate_OPERATION_DELETE,
		Relationship: rel,
	}
}

// ResourceFilter matches every tuple whose resource is of resourceType. A
// non-empty resourceID narrows the match to one resource.
func ResourceFilter(resourceType, resourceID string) *v1.RelationshipFilter {
	return &v1.RelationshipFilter{
		ResourceType:       resourceType,
		OptionalResourceId: resourceID,
	}
}

// SubjectScopedFilter matches every tuple on resources of resourceType whose
// subject is the given subject. An empty subjectRelation leaves the subject
// relation unconstrained; pass the relation (e.g. "member") to narrow
// further.
func SubjectScopedFilter(resourceType, subjectType, subjectID, subjectRelation string) *v1.RelationshipFilter {
	f := &v1.SubjectFilter{
		SubjectType:       subjectType,
		OptionalSubjectId: subjectID,
	}
	if subjectRelation != "" {
		f.OptionalRelation = &v1.SubjectFilter_RelationFilter{Relation: subjectRelation}
	}
	return &v1.RelationshipFilter{
		ResourceType:          resourceType,
		OptionalSubjectFilter: f,
	}
}

// TupleString renders a relationship in the canonical
// type:id#relation@type:id[#relation] form for logging.
func TupleString(rel *v1.Relationship) string {
	if rel == nil || rel.Resource == nil || rel.Subject == nil || rel.Subject.Object == nil {
		return "<invalid tuple>"
	}
	s := fmt.Sprintf("%s:%s#%s@%s:%s",
		rel.Resource.ObjectType, rel.Resource.ObjectId,
		rel.Relation,
		rel.Subject.Object.ObjectType, rel.Subject.Object.ObjectId,
	)
	if rel.Subject.OptionalRelation != "" {
		s += "#" + rel.Subject.OptionalRelation
	}
	return s
}
