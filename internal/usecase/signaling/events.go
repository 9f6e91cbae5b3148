package signaling

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// EventType identifies an asynchronous room notification
type EventType string

const (
	EventPeerJoined     EventType = "peer_joined"
	EventQualityChanged EventType = "quality_changed"
	EventConnectionLost EventType = "connection_lost"
	EventRoomClosed     EventType = "room_closed"
)

// Event is an asynchronous notification from the room manager to the session
// runner that owns the room.
type Event struct {
	Type      EventType
	RoomID    string
	SessionID uuid.UUID
	PeerID    string
	Role      entities.PeerRole
	State     entities.RoomState
}

// RelayMessage is an opaque negotiation payload delivered to the other peer.
// The room manager never inspects the payload.
type RelayMessage struct {
	From    string          `json:"from"`
	Payload json.RawMessage `json:"payload"`
}
