package netlog

import (
	"context"

	"voidwake/mobs/logging"
)

const (
	// EventClientConnected is emitted when a websocket client attaches
	// to a document.
	EventClientConnected logging.EventType = "net.client_connected"
	// EventClientDisconnected is emitted when the read loop ends.
	EventClientDisconnected logging.EventType = "net.client_disconnected"
	// EventMessageDiscarded is emitted for frames the handler cannot
	// decode or does not recognize.
	EventMessageDiscarded logging.EventType = "net.message_discarded"
)

// DisconnectPayload carries the reason the connection ended.
type DisconnectPayload struct {
	Reason string `json:"reason,omitempty"`
}

// DiscardPayload identifies the offending frame.
type DiscardPayload struct {
	Type   string `json:"type,omitempty"`
	Reason string `json:"reason"`
}

// ClientConnected publishes a connection event for a document ref.
func ClientConnected(ctx context.Context, pub logging.Publisher, entity string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventClientConnected,
		Entity:   entity,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNet,
	})
}

// ClientDisconnected publishes a disconnection event.
func ClientDisconnected(ctx context.Context, pub logging.Publisher, entity string, payload DisconnectPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventClientDisconnected,
		Entity:   entity,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNet,
		Payload:  payload,
	})
}

// MessageDiscarded publishes a discarded-frame event.
func MessageDiscarded(ctx context.Context, pub logging.Publisher, entity string, payload DiscardPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventMessageDiscarded,
		Entity:   entity,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryNet,
		Payload:  payload,
	})
}
