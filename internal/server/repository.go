package server

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/beep-chat/authz-projector/internal/authzed"
)

// Repository translates server events into relation tuples.
type Repository struct {
	store authzed.Store
	log   zerolog.Logger
}

// NewRepository creates a server projection repository over the given store.
func NewRepository(store authzed.Store, logger zerolog.Logger) *Repository {
	return &Repository{store: store, log: logger}
}

// Create writes the ownership tuple server:<id>#owner@user:<owner>.
func (r *Repository) Create(ctx context.Context, input CreateInput) error {
	rel := authzed.Tuple(
		authzed.Object(authzed.TypeServer, input.ServerID),
		"owner",
		authzed.Subject(authzed.TypeUser, input.OwnerID),
	)
	r.log.Debug().Str("tuple", authzed.TupleString(rel)).Msg("Writing server ownership tuple")

	if err := r.store.CreateRelationship(ctx, rel); err != nil {
		return fmt.Errorf("create server %s: %w", input.ServerID, err)
	}
	return nil
}

// Delete removes every tuple whose resource is the server. Tuples that
// reference the server as a subject (channel#server, role#server) are left
// in place; the owning entities delete them on their own lifecycle events.
func (r *Repository) Delete(ctx context.Context, input DeleteInput) error {
	filter := authzed.ResourceFilter(authzed.TypeServer, input.ServerID)
	if err := r.store.FilteredDelete(ctx, filter); err != nil {
		return fmt.Errorf("delete server %s: %w", input.ServerID, err)
	}
	return nil
}
