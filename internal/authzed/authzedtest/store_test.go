package authzedtest

import (
	"context"
	"errors"
	"testing"

	"github.com/beep-chat/authz-projector/internal/authzed"
)

func TestCreateRejectsDuplicates(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()
	rel := authzed.Tuple(authzed.Object(authzed.TypeServer, "srv_1"), "owner", authzed.Subject(authzed.TypeUser, "u1"))

	if err := s.CreateRelationship(ctx, rel); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := s.CreateRelationship(ctx, rel)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("second create error = %v, want ErrAlreadyExists", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestTouchIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()
	rel := authzed.Tuple(authzed.Object(authzed.TypeRole, "r1"), "member", authzed.Subject(authzed.TypeUser, "u1"))

	for range 2 {
		if err := s.TouchRelationship(ctx, rel); err != nil {
			t.Fatalf("touch: %v", err)
		}
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestDeleteAbsentTupleIsNoop(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()
	rel := authzed.Tuple(authzed.Object(authzed.TypeRole, "r1"), "member", authzed.Subject(authzed.TypeUser, "u1"))

	if err := s.DeleteRelationship(ctx, rel); err != nil {
		t.Fatalf("delete absent tuple: %v", err)
	}
}

func TestFilteredDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	seed := func(t *testing.T) *Store {
		t.Helper()
		s := NewStore()
		rels := []string{"owner", "administrator", "message_sender"}
		for _, relation := range rels {
			rel := authzed.Tuple(authzed.Object(authzed.TypeServer, "srv_1"), relation, authzed.SubjectWithRelation(authzed.TypeRole, "r1", "member"))
			if relation == "owner" {
				rel = authzed.Tuple(authzed.Object(authzed.TypeServer, "srv_1"), relation, authzed.Subject(authzed.TypeUser, "u1"))
			}
			if err := s.TouchRelationship(ctx, rel); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		if err := s.TouchRelationship(ctx, authzed.Tuple(authzed.Object(authzed.TypeChannel, "c1"), "server", authzed.Subject(authzed.TypeServer, "srv_1"))); err != nil {
			t.Fatalf("seed: %v", err)
		}
		return s
	}

	t.Run("by resource", func(t *testing.T) {
		t.Parallel()
		s := seed(t)
		if err := s.FilteredDelete(ctx, authzed.ResourceFilter(authzed.TypeServer, "srv_1")); err != nil {
			t.Fatal(err)
		}
		want := []string{"channel:c1#server@server:srv_1"}
		got := s.Tuples()
		if len(got) != 1 || got[0] != want[0] {
			t.Errorf("Tuples() = %v, want %v", got, want)
		}
	})

	t.Run("by subject", func(t *testing.T) {
		t.Parallel()
		s := seed(t)
		if err := s.FilteredDelete(ctx, authzed.SubjectScopedFilter(authzed.TypeServer, authzed.TypeRole, "r1", "member")); err != nil {
			t.Fatal(err)
		}
		if s.Len() != 2 {
			t.Errorf("Len() = %d, want 2 (owner tuple and channel tuple remain): %v", s.Len(), s.Tuples())
		}
		if !s.Has("server:srv_1#owner@user:u1") {
			t.Error("owner tuple deleted by role subject filter")
		}
	})

	t.Run("matching nothing", func(t *testing.T) {
		t.Parallel()
		s := seed(t)
		if err := s.FilteredDelete(ctx, authzed.ResourceFilter(authzed.TypeOverride, "ov_1")); err != nil {
			t.Errorf("filtered delete with zero matches: %v", err)
		}
	})
}

func TestReadRelationships(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()

	for _, id := range []string{"c2", "c1"} {
		rel := authzed.Tuple(authzed.Object(authzed.TypeChannel, id), "server", authzed.Subject(authzed.TypeServer, "srv_1"))
		if err := s.TouchRelationship(ctx, rel); err != nil {
			t.Fatal(err)
		}
	}

	rels, err := s.ReadRelationships(ctx, authzed.ResourceFilter(authzed.TypeChannel, ""))
	if err != nil {
		t.Fatal(err)
	}
	if len(rels) != 2 {
		t.Fatalf("got %d relationships, want 2", len(rels))
	}
	// Sorted canonical order.
	if authzed.TupleString(rels[0]) != "channel:c1#server@server:srv_1" {
		t.Errorf("first = %s, want channel:c1", authzed.TupleString(rels[0]))
	}
}
