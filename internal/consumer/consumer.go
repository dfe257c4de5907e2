// Package consumer binds broker queues to service calls. Each handler
// decodes one event type and forwards it; the pool owns decode and ack.
package consumer

import (
	"github.com/rs/zerolog"

	"github.com/beep-chat/authz-projector/internal/config"
	"github.com/beep-chat/authz-projector/internal/rabbit"
	"github.com/beep-chat/authz-projector/internal/service"
)

// State is the shared state every handler receives: the service facade and
// a logger for semantic drops the handlers ack anyway.
type State struct {
	Service *service.Service
	Log     zerolog.Logger
}

// Build registers all ten handlers against the queue names from the
// mapping file.
func Build(queues *config.Queues) *rabbit.Consumers[*State] {
	c := rabbit.NewConsumers[*State]()

	rabbit.Add(c, queues.Server.CreateServer, handleCreateServer)
	rabbit.Add(c, queues.Server.DeleteServer, handleDeleteServer)

	rabbit.Add(c, queues.Channel.CreateChannel, handleChannelCreated)
	rabbit.Add(c, queues.Channel.DeleteChannel, handleChannelDeleted)

	rabbit.Add(c, queues.Role.UpsertRole, handleUpsertRole)
	rabbit.Add(c, queues.Role.DeleteRole, handleDeleteRole)
	rabbit.Add(c, queues.Role.MemberAssignedToRole, handleMemberAssigned)
	rabbit.Add(c, queues.Role.MemberRemovedFromRole, handleMemberRemoved)

	rabbit.Add(c, queues.PermissionOverride.UpsertPermissionOverride, handleUpsertOverride)
	rabbit.Add(c, queues.PermissionOverride.DeletePermissionOverride, handleDeleteOverride)

	return c
}
