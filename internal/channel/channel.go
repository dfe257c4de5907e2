// Package channel projects channel lifecycle events into the relation
// store. Each channel is anchored to its server by a single scope tuple.
package channel

// CreateInput carries the fields of a channel-created event.
type CreateInput struct {
	ChannelID string
	ServerID  string
}

// DeleteInput carries the fields of a channel-deleted event.
type DeleteInput struct {
	ChannelID string
}
