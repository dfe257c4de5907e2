package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Queues maps the ten handler roles to concrete broker queue names. The
// file layout groups queues by entity.
type Queues struct {
	Server struct {
		CreateServer string `json:"create_server"`
		DeleteServer string `json:"delete_server"`
	} `json:"server"`
	Channel struct {
		CreateChannel string `json:"create_channel"`
		DeleteChannel string `json:"delete_channel"`
	} `json:"channel"`
	Role struct {
		UpsertRole            string `json:"upsert_role"`
		DeleteRole            string `json:"delete_role"`
		MemberAssignedToRole  string `json:"member_assigned_to_role"`
		MemberRemovedFromRole string `json:"member_removed_from_role"`
	} `json:"role"`
	PermissionOverride struct {
		UpsertPermissionOverride string `json:"upsert_permission_override"`
		DeletePermissionOverride string `json:"delete_permission_override"`
	} `json:"permission_override"`
}

// LoadQueues reads and validates the queue mapping file. Missing files,
// unparseable JSON and empty queue names are all startup errors; no
// defaults are substituted.
func LoadQueues(path string) (*Queues, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read queue config %s: %w", path, err)
	}

	q := &Queues{}
	if err := json.Unmarshal(data, q); err != nil {
		return nil, fmt.Errorf("parse queue config %s: %w", path, err)
	}

	if err := q.validate(); err != nil {
		return nil, fmt.Errorf("queue config %s: %w", path, err)
	}
	return q, nil
}

func (q *Queues) validate() error {
	var errs []error
	for _, entry := range []struct {
		key  string
		name string
	}{
		{"server.create_server", q.Server.CreateServer},
		{"server.delete_server", q.Server.DeleteServer},
		{"channel.create_channel", q.Channel.CreateChannel},
		{"channel.delete_channel", q.Channel.DeleteChannel},
		{"role.upsert_role", q.Role.UpsertRole},
		{"role.delete_role", q.Role.DeleteRole},
		{"role.member_assigned_to_role", q.Role.MemberAssignedToRole},
		{"role.member_removed_from_role", q.Role.MemberRemovedFromRole},
		{"permission_override.upsert_permission_override", q.PermissionOverride.UpsertPermissionOverride},
		{"permission_override.delete_permission_override", q.PermissionOverride.DeletePermissionOverride},
	} {
		if entry.name == "" {
			errs = append(errs, fmt.Errorf("missing queue name for %s", entry.key))
		}
	}
	return errors.Join(errs...)
}
