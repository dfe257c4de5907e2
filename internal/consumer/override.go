package consumer

import (
	"context"

	"github.com/beep-chat/authz-projector/internal/events"
	"github.com/beep-chat/authz-projector/internal/override"
)

func handleUpsertOverride(ctx context.Context, state *State, msg *events.UpsertPermissionOverride) error {
	log := state.Log.With().
		Str("override_id", msg.OverrideID).
		Str("channel_id", msg.ChannelID).
		Logger()

	// Well-formed but unprojectable events are acked: the broker would
	// redeliver them forever otherwise.
	target, ok := overrideTarget(msg.Target)
	if !ok {
		log.Warn().Msg("Override event carries no target, skipping")
		return nil
	}
	if msg.Action != events.OverrideActionAllow && msg.Action != events.OverrideActionDeny {
		log.Warn().Str("action", msg.Action.String()).Msg("Override event carries no action, skipping")
		return nil
	}

	return state.Service.CreateOverride(ctx, override.CreateInput{
		OverrideID:        msg.OverrideID,
		ChannelID:         msg.ChannelID,
		PermissionBitmask: msg.PermissionBitmask,
		IsAllow:           msg.Action == events.OverrideActionAllow,
		Target:            target,
	})
}

func handleDeleteOverride(ctx context.Context, state *State, msg *events.DeletePermissionOverride) error {
	return state.Service.DeleteOverride(ctx, override.DeleteInput{
		OverrideID: msg.OverrideID,
	})
}

func overrideTarget(t events.Target) (override.Target, bool) {
	switch t.Kind {
	case events.TargetUser:
		return override.Target{Kind: override.TargetUser, ID: t.ID}, true
	case events.TargetRole:
		return override.Target{Kind: override.TargetRole, ID: t.ID}, true
	default:
		return override.Target{}, false
	}
}
