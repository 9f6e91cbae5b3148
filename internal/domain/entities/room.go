package entities

import "time"

// RoomState represents the signaling state of a room
type RoomState string

const (
	RoomStateOpen     RoomState = "open"
	RoomStateDegraded RoomState = "degraded"
	RoomStateClosed   RoomState = "closed"
)

// PeerRole identifies which side of the interview a peer is
type PeerRole string

const (
	PeerRoleCandidate   PeerRole = "candidate"
	PeerRoleInterviewer PeerRole = "interviewer"
)

// QualitySample is one connection-quality report from a peer. Samples are
// commutative within the sliding window; arrival order does not matter.
type QualitySample struct {
	PacketLoss float64   `json:"packet_loss"` // 0..1
	RTTMillis  float64   `json:"rtt_ms"`
	ReportedAt time.Time `json:"reported_at"`
}
