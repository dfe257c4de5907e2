package channel

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/beep-chat/authz-projector/internal/authzed"
)

// Repository translates channel events into relation tuples.
type Repository struct {
	store authzed.Store
	log   zerolog.Logger
}

// NewRepository creates a channel projection repository over the given store.
func NewRepository(store authzed.Store, logger zerolog.Logger) *Repository {
	return &Repository{store: store, log: logger}
}

// Create writes the scope tuple channel:<id>#server@server:<server>.
func (r *Repository) Create(ctx context.Context, input CreateInput) error {
	rel := authzed.Tuple(
		authzed.Object(authzed.TypeChannel, input.ChannelID),
		"server",
		authzed.Subject(authzed.TypeServer, input.ServerID),
	)
	r.log.Debug().Str("tuple", authzed.TupleString(rel)).Msg("Writing channel scope tuple")

	if err := r.store.CreateRelationship(ctx, rel); err != nil {
		return fmt.Errorf("create channel %s: %w", input.ChannelID, err)
	}
	return nil
}

// Delete removes every tuple whose resource is the channel, including the
// scope tuple and any override grant/deny tuples projected onto it.
func (r *Repository) Delete(ctx context.Context, input DeleteInput) error {
	filter := authzed.ResourceFilter(authzed.TypeChannel, input.ChannelID)
	if err := r.store.FilteredDelete(ctx, filter); err != nil {
		return fmt.Errorf("delete channel %s: %w", input.ChannelID, err)
	}
	return nil
}
