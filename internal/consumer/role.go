package consumer

import (
	"context"

	"github.com/beep-chat/authz-projector/internal/events"
	"github.com/beep-chat/authz-projector/internal/role"
)

func handleUpsertRole(ctx context.Context, state *State, msg *events.UpsertRole) error {
	return state.Service.UpsertRole(ctx, role.UpsertInput{
		RoleID:             msg.RoleID,
		ServerID:           msg.ServerID,
		PermissionsBitmask: msg.PermissionsBitmask,
	})
}

func handleDeleteRole(ctx context.Context, state *State, msg *events.DeleteRole) error {
	return state.Service.DeleteRole(ctx, role.DeleteInput{
		RoleID: msg.RoleID,
	})
}

func handleMemberAssigned(ctx context.Context, state *State, msg *events.MemberAssignedToRole) error {
	return state.Service.AssignMember(ctx, role.MemberInput{
		UserID: msg.UserID,
		RoleID: msg.RoleID,
	})
}

func handleMemberRemoved(ctx context.Context, state *State, msg *events.MemberRemovedFromRole) error {
	return state.Service.RemoveMember(ctx, role.MemberInput{
		UserID: msg.UserID,
		RoleID: msg.RoleID,
	})
}
