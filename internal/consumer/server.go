package consumer

import (
	"context"

	"github.com/beep-chat/authz-projector/internal/events"
	"github.com/beep-chat/authz-projector/internal/server"
)

func handleCreateServer(ctx context.Context, state *State, msg *events.CreateServer) error {
	return state.Service.CreateServer(ctx, server.CreateInput{
		ServerID: msg.ServerID,
		OwnerID:  msg.OwnerID,
	})
}

func handleDeleteServer(ctx context.Context, state *State, msg *events.DeleteServer) error {
	return state.Service.DeleteServer(ctx, server.DeleteInput{
		ServerID: msg.ServerID,
	})
}
