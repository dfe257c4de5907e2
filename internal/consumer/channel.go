package consumer

import (
	"context"

	"github.com/beep-chat/authz-projector/internal/channel"
	"github.com/beep-chat/authz-projector/internal/events"
)

func handleChannelCreated(ctx context.Context, state *State, msg *events.ChannelCreated) error {
	return state.Service.CreateChannel(ctx, channel.CreateInput{
		ChannelID: msg.ChannelID,
		ServerID:  msg.ServerID,
	})
}

func handleChannelDeleted(ctx context.Context, state *State, msg *events.ChannelDeleted) error {
	return state.Service.DeleteChannel(ctx, channel.DeleteInput{
		ChannelID: msg.ChannelID,
	})
}
