// Package service is the thin domain facade the event handlers call. It
// owns one handle to each projection repository and forwards 1:1, adding
// structured request/success/failure logs.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/beep-chat/authz-projector/internal/channel"
	"github.com/beep-chat/authz-projector/internal/override"
	"github.com/beep-chat/authz-projector/internal/role"
	"github.com/beep-chat/authz-projector/internal/server"
)

// ServerRepository is the server projection surface used by the facade.
type ServerRepository interface {
	Create(ctx context.Context, input server.CreateInput) error
	Delete(ctx context.Context, input server.DeleteInput) error
}

// ChannelRepository is the channel projection surface used by the facade.
type ChannelRepository interface {
	Create(ctx context.Context, input channel.CreateInput) error
	Delete(ctx context.Context, input channel.DeleteInput) error
}

// RoleRepository is the role projection surface used by the facade.
type RoleRepository interface {
	Upsert(ctx context.Context, input role.UpsertInput) error
	Delete(ctx context.Context, input role.DeleteInput) error
	AssignMember(ctx context.Context, input role.MemberInput) error
	RemoveMember(ctx context.Context, input role.MemberInput) error
}

// OverrideRepository is the override projection surface used by the facade.
type OverrideRepository interface {
	Create(ctx context.Context, input override.CreateInput) error
	Delete(ctx context.Context, input override.DeleteInput) error
}

// Service bundles the four projection repositories behind one named entry
// point. It is cheap to copy; all fields are handles.
type Service struct {
	servers   ServerRepository
	channels  ChannelRepository
	roles     RoleRepository
	overrides OverrideRepository
	log       zerolog.Logger
}

// New creates the facade over the four repositories.
func New(servers ServerRepository, channels ChannelRepository, roles RoleRepository, overrides OverrideRepository, logger zerolog.Logger) *Service {
	return &Service{
		servers:   servers,
		channels:  channels,
		roles:     roles,
		overrides: overrides,
		log:       logger,
	}
}

// CreateServer projects a new server and its owner.
func (s *Service) CreateServer(ctx context.Context, input server.CreateInput) error {
	log := s.log.With().Str("server_id", input.ServerID).Str("owner_id", input.OwnerID).Logger()
	log.Info().Msg("Creating server projection")
	if err := s.servers.Create(ctx, input); err != nil {
		log.Error().Err(err).Msg("Server projection failed")
		return err
	}
	log.Info().Msg("Server projection created")
	return nil
}

// DeleteServer removes a server's projected tuples.
func (s *Service) DeleteServer(ctx context.Context, input server.DeleteInput) error {
	log := s.log.With().Str("server_id", input.ServerID).Logger()
	log.Info().Msg("Deleting server projection")
	if err := s.servers.Delete(ctx, input); err != nil {
		log.Error().Err(err).Msg("Server deletion failed")
		return err
	}
	log.Info().Msg("Server projection deleted")
	return nil
}

// CreateChannel projects a new channel scoped to its server.
func (s *Service) CreateChannel(ctx context.Context, input channel.CreateInput) error {
	log := s.log.With().Str("channel_id", input.ChannelID).Str("server_id", input.ServerID).Logger()
	log.Info().Msg("Creating channel projection")
	if err := s.channels.Create(ctx, input); err != nil {
		log.Error().Err(err).Msg("Channel projection failed")
		return err
	}
	log.Info().Msg("Channel projection created")
	return nil
}

// DeleteChannel removes a channel's projected tuples.
func (s *Service) DeleteChannel(ctx context.Context, input channel.DeleteInput) error {
	log := s.log.With().Str("channel_id", input.ChannelID).Logger()
	log.Info().Msg("Deleting channel projection")
	if err := s.channels.Delete(ctx, input); err != nil {
		log.Error().Err(err).Msg("Channel deletion failed")
		return err
	}
	log.Info().Msg("Channel projection deleted")
	return nil
}

// UpsertRole replaces a role's projected permission set.
func (s *Service) UpsertRole(ctx context.Context, input role.UpsertInput) error {
	log := s.log.With().
		Str("role_id", input.RoleID).
		Str("server_id", input.ServerID).
		Uint64("permissions_bitmask", input.PermissionsBitmask).
		Logger()
	log.Info().Msg("Upserting role projection")
	if err := s.roles.Upsert(ctx, input); err != nil {
		log.Error().Err(err).Msg("Role upsert failed")
		return err
	}
	log.Info().Msg("Role projection upserted")
	return nil
}

// DeleteRole removes a role's projected tuples.
func (s *Service) DeleteRole(ctx context.Context, input role.DeleteInput) error {
	log := s.log.With().Str("role_id", input.RoleID).Logger()
	log.Info().Msg("Deleting role projection")
	if err := s.roles.Delete(ctx, input); err != nil {
		log.Error().Err(err).Msg("Role deletion failed")
		return err
	}
	log.Info().Msg("Role projection deleted")
	return nil
}

// AssignMember projects a user into a role.
func (s *Service) AssignMember(ctx context.Context, input role.MemberInput) error {
	log := s.log.With().Str("user_id", input.UserID).Str("role_id", input.RoleID).Logger()
	log.Info().Msg("Assigning member to role")
	if err := s.roles.AssignMember(ctx, input); err != nil {
		log.Error().Err(err).Msg("Member assignment failed")
		return err
	}
	log.Info().Msg("Member assigned to role")
	return nil
}

// RemoveMember removes a user from a role.
func (s *Service) RemoveMember(ctx context.Context, input role.MemberInput) error {
	log := s.log.With().Str("user_id", input.UserID).Str("role_id", input.RoleID).Logger()
	log.Info().Msg("Removing member from role")
	if err := s.roles.RemoveMember(ctx, input); err != nil {
		log.Error().Err(err).Msg("Member removal failed")
		return err
	}
	log.Info().Msg("Member removed from role")
	return nil
}

// CreateOverride projects a per-channel permission override.
func (s *Service) CreateOverride(ctx context.Context, input override.CreateInput) error {
	log := s.log.With().
		Str("override_id", input.OverrideID).
		Str("channel_id", input.ChannelID).
		Bool("is_allow", input.IsAllow).
		Logger()
	log.Info().Msg("Creating override projection")
	if err := s.overrides.Create(ctx, input); err != nil {
		log.Error().Err(err).Msg("Override projection failed")
		return err
	}
	log.Info().Msg("Override projection created")
	return nil
}

// DeleteOverride removes an override's projected tuples.
func (s *Service) DeleteOverride(ctx context.Context, input override.DeleteInput) error {
	log := s.log.With().Str("override_id", input.OverrideID).Logger()
	log.Info().Msg("Deleting override projection")
	if err := s.overrides.Delete(ctx, input); err != nil {
		log.Error().Err(err).Msg("Override deletion failed")
		return err
	}
	log.Info().Msg("Override projection deleted")
	return nil
}
