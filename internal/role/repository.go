package role

import (
	"context"
	"fmt"

	v1 "github.com/authzed/authzed-go/proto/authzed/api/v1"
	"github.com/rs/zerolog"

	"github.com/beep-chat/authz-projector/internal/authzed"
	"github.com/beep-chat/authz-projector/internal/permissions"
)

// Repository translates role events into relation tuples.
type Repository struct {
	store   authzed.Store
	catalog *permissions.Catalog
	log     zerolog.Logger
}

// NewRepository creates a role projection repository over the given store
// and permission catalog.
func NewRepository(store authzed.Store, catalog *permissions.Catalog, logger zerolog.Logger) *Repository {
	return &Repository{store: store, catalog: catalog, log: logger}
}

// Upsert replaces the projected state of a role. Existing server-scope
// permission tuples for the role are removed with one filtered delete, then
// the scope tuple and the permission tuples derived from the bitmask are
// written in one TOUCH batch, so redelivery of the same event is harmless.
func (r *Repository) Upsert(ctx context.Context, input UpsertInput) error {
	// Replace step: without it, permissions cleared from the bitmask would
	// survive as stale tuples.
	clear := authzed.SubjectScopedFilter(authzed.TypeServer, authzed.TypeRole, input.RoleID, "member")
	if err := r.store.FilteredDelete(ctx, clear); err != nil {
		return fmt.Errorf("upsert role %s: clear permissions: %w", input.RoleID, err)
	}

	updates := r.upsertBatch(input)
	if len(updates) == 1 {
		// Bitmask yielded no server-scope permissions; the scope tuple is
		// still written.
		if err := r.store.TouchRelationship(ctx, updates[0].Relationship); err != nil {
			return fmt.Errorf("upsert role %s: write scope tuple: %w", input.RoleID, err)
		}
		return nil
	}

	if err := r.store.WriteRelationships(ctx, updates); err != nil {
		return fmt.Errorf("upsert role %s: write tuples: %w", input.RoleID, err)
	}
	return nil
}

// upsertBatch builds the TOUCH batch for an upsert: the role#server scope
// tuple first, then one server-permission tuple per server-scope bit.
func (r *Repository) upsertBatch(input UpsertInput) []*v1.RelationshipUpdate {
	scope := authzed.Tuple(
		authzed.Object(authzed.TypeRole, input.RoleID),
		"server",
		authzed.Subject(authzed.TypeServer, input.ServerID),
	)
	updates := []*v1.RelationshipUpdate{authzed.Touch(scope)}

	for _, display := range r.catalog.ParseBitmask(input.PermissionsBitmask) {
		relation, ok := permissions.ServerRelation(display)
		if !ok {
			r.log.Warn().
				Str("role_id", input.RoleID).
				Str("permission", string(display)).
				Msg("Unknown permission name, skipping")
			continue
		}
		rel := authzed.Tuple(
			authzed.Object(authzed.TypeServer, input.ServerID),
			relation,
			authzed.SubjectWithRelation(authzed.TypeRole, input.RoleID, "member"),
		)
		r.log.Debug().Str("tuple", authzed.TupleString(rel)).Msg("Adding role permission tuple")
		updates = append(updates, authzed.Touch(rel))
	}
	return updates
}

// Delete removes every tuple the role appears in: role-as-resource tuples
// (scope and memberships) and the server-scope permission tuples projected
// from it.
func (r *Repository) Delete(ctx context.Context, input DeleteInput) error {
	resource := authzed.ResourceFilter(authzed.TypeRole, input.RoleID)
	if err := r.store.FilteredDelete(ctx, resource); err != nil {
		return fmt.Errorf("delete role %s: resource tuples: %w", input.RoleID, err)
	}

	subject := authzed.SubjectScopedFilter(authzed.TypeServer, authzed.TypeRole, input.RoleID, "member")
	if err := r.store.FilteredDelete(ctx, subject); err != nil {
		return fmt.Errorf("delete role %s: permission tuples: %w", input.RoleID, err)
	}
	return nil
}

// AssignMember writes role:<id>#member@user:<id>. TOUCH keeps redelivered
// assignments from failing on the duplicate tuple.
func (r *Repository) AssignMember(ctx context.Context, input MemberInput) error {
	rel := r.memberTuple(input)
	if err := r.store.TouchRelationship(ctx, rel); err != nil {
		return fmt.Errorf("assign member %s to role %s: %w", input.UserID, input.RoleID, err)
	}
	return nil
}

// RemoveMember deletes role:<id>#member@user:<id>.
func (r *Repository) RemoveMember(ctx context.Context, input MemberInput) error {
	rel := r.memberTuple(input)
	if err := r.store.DeleteRelationship(ctx, rel); err != nil {
		return fmt.Errorf("remove member %s from role %s: %w", input.UserID, input.RoleID, err)
	}
	return nil
}

func (r *Repository) memberTuple(input MemberInput) *v1.Relationship {
	return authzed.Tuple(
		authzed.Object(authzed.TypeRole, input.RoleID),
		"member",
		authzed.Subject(authzed.TypeUser, input.UserID),
	)
}
