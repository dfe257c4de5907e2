package channel

import (
	"context"
	"slices"
	"testing"

	"github.com/rs/zerolog"

	"github.com/beep-chat/authz-projector/internal/authzed"
	"github.com/beep-chat/authz-projector/internal/authzed/authzedtest"
)

func TestCreateWritesScopeTuple(t *testing.T) {
	t.Parallel()

	store := authzedtest.NewStore()
	repo := NewRepository(store, zerolog.Nop())

	err := repo.Create(context.Background(), CreateInput{ChannelID: "c1", ServerID: "srv_1"})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"channel:c1#server@server:srv_1"}
	if got := store.Tuples(); !slices.Equal(got, want) {
		t.Errorf("tuples = %v, want %v", got, want)
	}
}

func TestDeleteRemovesChannelResourceTuples(t *testing.T) {
	t.Parallel()

	store := authzedtest.NewStore()
	repo := NewRepository(store, zerolog.Nop())
	ctx := context.Background()

	if err := repo.Create(ctx, CreateInput{ChannelID: "c1", ServerID: "srv_1"}); err != nil {
		t.Fatal(err)
	}
	// Override grant tuples also live on the channel resource.
	grant := authzed.Tuple(
		authzed.Object(authzed.TypeChannel, "c1"),
		"send_message_grant",
		authzed.SubjectWithRelation(authzed.TypeOverride, "ov1", "granted_to"),
	)
	if err := store.TouchRelationship(ctx, grant); err != nil {
		t.Fatal(err)
	}
	other := authzed.Tuple(
		authzed.Object(authzed.TypeChannel, "c2"),
		"server",
		authzed.Subject(authzed.TypeServer, "srv_1"),
	)
	if err := store.TouchRelationship(ctx, other); err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(ctx, DeleteInput{ChannelID: "c1"}); err != nil {
		t.Fatal(err)
	}

	want := []string{"channel:c2#server@server:srv_1"}
	if got := store.Tuples(); !slices.Equal(got, want) {
		t.Errorf("tuples after delete = %v, want %v", got, want)
	}
}

func TestDeleteUnknownChannelIsNoop(t *testing.T) {
	t.Parallel()

	repo := NewRepository(authzedtest.NewStore(), zerolog.Nop())
	if err := repo.Delete(context.Background(), DeleteInput{ChannelID: "ghost"}); err != nil {
		t.Errorf("delete of unknown channel: %v", err)
	}
}
