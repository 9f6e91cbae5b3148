package signaling

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
)

// maxPeers is fixed: one candidate peer, one interviewer-service peer
const maxPeers = 2

// peer tracks one participant's registration and quality window
type peer struct {
	id            string
	role          entities.PeerRole
	outbox        chan RelayMessage
	samples       []entities.QualitySample
	criticalSince *time.Time
}

// windowAverage returns the mean packet loss over the sliding window
func (p *peer) windowAverage() float64 {
	if len(p.samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range p.samples {
		sum += s.PacketLoss
	}
	return sum / float64(len(p.samples))
}

// addSample appends a quality sample, keeping only the last windowSize
// samples. Sample order within the window does not affect the average.
func (p *peer) addSample(sample entities.QualitySample, windowSize int) {
	p.samples = append(p.samples, sample)
	if len(p.samples) > windowSize {
		p.samples = p.samples[len(p.samples)-windowSize:]
	}
}

// Room is the signaling scope for exactly one session. Access to a room's
// state is serialized by its own mutex; different rooms proceed in parallel.
type Room struct {
	mu        sync.Mutex
	id        string
	sessionID uuid.UUID
	state     entities.RoomState
	audioOnly bool
	peers     map[string]*peer
	events    chan Event
	createdAt time.Time
}

func newRoom(id string, sessionID uuid.UUID, audioOnly bool) *Room {
	return &Room{
		id:        id,
		sessionID: sessionID,
		state:     entities.RoomStateOpen,
		audioOnly: audioOnly,
		peers:     make(map[string]*peer, maxPeers),
		events:    make(chan Event, eventBuffer),
		createdAt: time.Now(),
	}
}

// ID returns the room id
func (r *Room) ID() string {
	return r.id
}

// SessionID returns the owning session id
func (r *Room) SessionID() uuid.UUID {
	return r.sessionID
}

// Events returns the channel the owning session runner selects on
func (r *Room) Events() <-chan Event {
	return r.events
}

// State returns the current room state
func (r *Room) State() entities.RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// PeerCount returns the number of registered peers
func (r *Room) PeerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.peers)
}

// AudioOnly reports whether the room was opened in degraded audio-only mode
func (r *Room) AudioOnly() bool {
	return r.audioOnly
}

// emit delivers an event without blocking room operations. The buffer is
// generous; if the owning runner has stopped draining, the event is dropped
// rather than wedging the signaling layer.
func (r *Room) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
	}
}
