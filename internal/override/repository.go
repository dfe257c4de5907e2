package override

import (
	"context"
	"fmt"

	v1 "github.com/authzed/authzed-go/proto/authzed/api/v1"
	"github.com/rs/zerolog"

	"github.com/beep-chat/authz-projector/internal/authzed"
	"github.com/beep-chat/authz-projector/internal/permissions"
)

// Repository translates permission-override events into relation tuples.
type Repository struct {
	store   authzed.Store
	catalog *permissions.Catalog
	cache   *cache
	log     zerolog.Logger
}

// NewRepository creates an override projection repository over the given
// store and permission catalog.
func NewRepository(store authzed.Store, catalog *permissions.Catalog, logger zerolog.Logger) *Repository {
	return &Repository{store: store, catalog: catalog, cache: newCache(), log: logger}
}

// Create projects an override:
//
//	permission_override:<id>#channel@channel:<channel>
//	permission_override:<id>#granted_to|denied_to@<target>
//	channel:<channel>#<perm>_grant|_deny@permission_override:<id>#granted_to|denied_to
//
// one channel tuple per channel-scope bit in the bitmask. Bits outside the
// channel scope are dropped with a warning.
func (r *Repository) Create(ctx context.Context, input CreateInput) error {
	channelRel := authzed.Tuple(
		authzed.Object(authzed.TypeOverride, input.OverrideID),
		"channel",
		authzed.Subject(authzed.TypeChannel, input.ChannelID),
	)
	if err := r.store.CreateRelationship(ctx, channelRel); err != nil {
		return fmt.Errorf("create override %s: channel tuple: %w", input.OverrideID, err)
	}

	targetRel := authzed.Tuple(
		authzed.Object(authzed.TypeOverride, input.OverrideID),
		targetRelation(input.IsAllow),
		targetSubject(input.Target),
	)
	if err := r.store.CreateRelationship(ctx, targetRel); err != nil {
		return fmt.Errorf("create override %s: target tuple: %w", input.OverrideID, err)
	}

	updates := r.channelUpdates(input)
	if len(updates) == 0 {
		r.log.Warn().
			Str("override_id", input.OverrideID).
			Str("channel_id", input.ChannelID).
			Uint64("permission_bitmask", input.PermissionBitmask).
			Msg("No channel-scope permissions in override bitmask, no channel tuples written")
	} else if err := r.store.WriteRelationships(ctx, updates); err != nil {
		return fmt.Errorf("create override %s: channel permission tuples: %w", input.OverrideID, err)
	}

	// The index only serves later inspection and debugging; deletion never
	// depends on it.
	r.cache.put(input)
	return nil
}

// channelUpdates builds the CREATE batch of channel grant/deny tuples for
// the channel-scope bits of the bitmask.
func (r *Repository) channelUpdates(input CreateInput) []*v1.RelationshipUpdate {
	var updates []*v1.RelationshipUpdate
	for _, display := range r.catalog.ParseBitmask(input.PermissionBitmask) {
		if !permissions.IsChannelScope(display) {
			r.log.Warn().
				Str("override_id", input.OverrideID).
				Str("permission", string(display)).
				Msg("Non-channel permission in override bitmask, ignoring")
			continue
		}
		relation, ok := permissions.ChannelRelation(display, input.IsAllow)
		if !ok {
			// Unreachable for catalog displays; kept as a guard.
			continue
		}
		rel := authzed.Tuple(
			authzed.Object(authzed.TypeChannel, input.ChannelID),
			relation,
			authzed.SubjectWithRelation(authzed.TypeOverride, input.OverrideID, targetRelation(input.IsAllow)),
		)
		r.log.Debug().Str("tuple", authzed.TupleString(rel)).Msg("Adding override channel tuple")
		updates = append(updates, authzed.Create(rel))
	}
	return updates
}

// Delete removes every tuple the override appears in, using filters only so
// the path stays correct after a restart empties the parameter index:
// first the override-as-resource tuples (#channel and #granted_to/#denied_to),
// then every channel grant/deny tuple pointing at the override.
func (r *Repository) Delete(ctx context.Context, input DeleteInput) error {
	resource := authzed.ResourceFilter(authzed.TypeOverride, input.OverrideID)
	if err := r.store.FilteredDelete(ctx, resource); err != nil {
		return fmt.Errorf("delete override %s: resource tuples: %w", input.OverrideID, err)
	}

	subject := authzed.SubjectScopedFilter(authzed.TypeChannel, authzed.TypeOverride, input.OverrideID, "")
	if err := r.store.FilteredDelete(ctx, subject); err != nil {
		return fmt.Errorf("delete override %s: channel tuples: %w", input.OverrideID, err)
	}

	r.cache.remove(input.OverrideID)
	return nil
}

// Cached returns the parameters of a previously created override, if the
// in-process index still holds them.
func (r *Repository) Cached(overrideID string) (CreateInput, bool) {
	return r.cache.get(overrideID)
}

func targetRelation(isAllow bool) string {
	if isAllow {
		return "granted_to"
	}
	return "denied_to"
}

func targetSubject(t Target) *v1.SubjectReference {
	switch t.Kind {
	case TargetRole:
		return authzed.SubjectWithRelation(authzed.TypeRole, t.ID, "member")
	default:
		return authzed.Subject(authzed.TypeUser, t.ID)
	}
}
