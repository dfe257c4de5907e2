// Package authzedtest provides an in-memory relation store implementing the
// client contract, with the same filter and duplicate-write semantics as
// SpiceDB, for use in tests.
package authzedtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	v1 "github.com/authzed/authzed-go/proto/authzed/api/v1"

	"github.com/beep-chat/authz-projector/internal/authzed"
)

// ErrAlreadyExists is returned when a CREATE update targets a tuple that is
// already present, matching the store's duplicate-write behaviour.
var ErrAlreadyExists = errors.New("relationship already exists")

// Store is an in-memory relation store. The zero value is not usable; call
// NewStore.
type Store struct {
	mu     sync.Mutex
	tuples map[string]*v1.Relationship
}

var _ authzed.Store = (*Store)(nil)

// NewStore returns an empty in-memory relation store.
func NewStore() *Store {
	return &Store{tuples: make(map[string]*v1.Relationship)}
}

func (s *Store) CreateRelationship(ctx context.Context, rel *v1.Relationship) error {
	return s.WriteRelationships(ctx, []*v1.RelationshipUpdate{authzed.Create(rel)})
}

func (s *Store) TouchRelationship(ctx context.Context, rel *v1.Relationship) error {
	return s.WriteRelationships(ctx, []*v1.RelationshipUpdate{authzed.Touch(rel)})
}

func (s *Store) DeleteRelationship(ctx context.Context, rel *v1.Relationship) error {
	return s.WriteRelationships(ctx, []*v1.RelationshipUpdate{authzed.Delete(rel)})
}

// WriteRelationships applies the batch atomically: if any CREATE collides
// with an existing tuple, nothing is written. Deletes of absent tuples are
// no-ops.
func (s *Store) WriteRelationships(_ context.Context, updates []*v1.RelationshipUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range updates {
		if u.Operation == v1.RelationshipUpdate_OPERATION_CREATE {
			if _, ok := s.tuples[authzed.TupleString(u.Relationship)]; ok {
				return fmt.Errorf("%w: %s", ErrAlreadyExists, authzed.TupleString(u.Relationship))
			}
		}
	}

	for _, u := range updates {
		key := authzed.TupleString(u.Relationship)
		switch u.Operation {
		case v1.RelationshipUpdate_OPERATION_CREATE, v1.RelationshipUpdate_OPERATION_TOUCH:
			s.tuples[key] = u.Relationship
		case v1.RelationshipUpdate_OPERATION_DELETE:
			delete(s.tuples, key)
		default:
			return fmt.Errorf("unknown operation %v", u.Operation)
		}
	}
	return nil
}

// FilteredDelete removes every tuple matching the filter. Matching nothing
// is not an error.
func (s *Store) FilteredDelete(_ context.Context, filter *v1.RelationshipFilter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, rel := range s.tuples {
		if matches(filter, rel) {
			delete(s.tuples, key)
		}
	}
	return nil
}

// ReadRelationships returns every tuple matching the filter, sorted by
// canonical string form for deterministic assertions.
func (s *Store) ReadRelationships(_ context.Context, filter *v1.RelationshipFilter) ([]*v1.Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rels []*v1.Relationship
	for _, rel := range s.tuples {
		if matches(filter, rel) {
			rels = append(rels, rel)
		}
	}
	sort.Slice(rels, func(i, j int) bool {
		return authzed.TupleString(rels[i]) < authzed.TupleString(rels[j])
	})
	return rels, nil
}

// Tuples returns the canonical string form of every stored tuple, sorted.
func (s *Store) Tuples() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.tuples))
	for key := range s.tuples {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether the store contains the tuple with the given canonical
// string form.
func (s *Store) Has(tuple string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tuples[tuple]
	return ok
}

// Len returns the number of stored tuples.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tuples)
}

func matches(f *v1.RelationshipFilter, rel *v1.Relationship) bool {
	if f.ResourceType != "" && rel.Resource.ObjectType != f.ResourceType {
		return false
	}
	if f.OptionalResourceId != "" && rel.Resource.ObjectId != f.OptionalResourceId {
		return false
	}
	if f.OptionalRelation != "" && rel.Relation != f.OptionalRelation {
		return false
	}
	if sf := f.OptionalSubjectFilter; sf != nil {
		if rel.Subject.Object.ObjectType != sf.SubjectType {
			return false
		}
		if sf.OptionalSubjectId != "" && rel.Subject.Object.ObjectId != sf.OptionalSubjectId {
			return false
		}
		if rf := sf.OptionalRelation; rf != nil && rel.Subject.OptionalRelation != rf.Relation {
			return false
		}
	}
	return true
}
