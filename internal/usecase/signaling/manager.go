package signaling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
	"github.com/talentwire/interview-orchestrator/internal/metrics"
	"github.com/talentwire/interview-orchestrator/internal/usecase/registry"
)

const eventBuffer = 16

// Config tunes the room manager. Zero values fall back to defaults.
type Config struct {
	WindowSize         int           // sliding quality window length
	DegradedPacketLoss float64       // window average marking the room degraded
	CriticalPacketLoss float64       // window average that, sustained, loses the connection
	SustainedCritical  time.Duration // how long critical loss must persist
	OpTimeout          time.Duration // bound on any signaling call
}

// DefaultConfig returns the default room manager configuration
func DefaultConfig() Config {
	return Config{
		WindowSize:         10,
		DegradedPacketLoss: 0.05,
		CriticalPacketLoss: 0.15,
		SustainedCritical:  10 * time.Second,
		OpTimeout:          5 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.WindowSize <= 0 {
		c.WindowSize = d.WindowSize
	}
	if c.DegradedPacketLoss <= 0 {
		c.DegradedPacketLoss = d.DegradedPacketLoss
	}
	if c.CriticalPacketLoss <= 0 {
		c.CriticalPacketLoss = d.CriticalPacketLoss
	}
	if c.SustainedCritical <= 0 {
		c.SustainedCritical = d.SustainedCritical
	}
	if c.OpTimeout <= 0 {
		c.OpTimeout = d.OpTimeout
	}
	return c
}

// Manager brokers the connection-negotiation handshake between the two peers
// of each session and monitors the resulting path. It never inspects
// negotiation payloads and never decides session policy; quality-driven
// closures are reported to the owning session runner as events.
type Manager struct {
	rooms  *registry.Registry[*Room]
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

// NewManager creates a room manager backed by the given room registry
func NewManager(rooms *registry.Registry[*Room], cfg Config, logger *zap.Logger) *Manager {
	return &Manager{
		rooms:  rooms,
		cfg:    cfg.withDefaults(),
		logger: logger,
		now:    time.Now,
	}
}

// OpenRoom creates the signaling room for a session. A session has at most
// one open room at any time.
func (m *Manager) OpenRoom(sessionID uuid.UUID, audioOnly bool) (*Room, error) {
	roomID := fmt.Sprintf("room-%s", uuid.New().String())
	room := newRoom(roomID, sessionID, audioOnly)

	if !m.rooms.PutIfAbsent(sessionKey(sessionID), room) {
		return nil, entities.ErrDuplicateRoom
	}
	m.rooms.Put(roomID, room)

	metrics.ActiveRooms.Inc()
	m.logger.Info("room opened",
		zap.String("room_id", roomID),
		zap.String("session_id", sessionID.String()),
		zap.Bool("audio_only", audioOnly),
	)
	return room, nil
}

// Join registers a peer in a room. At most two peers may register; a third
// join fails with ErrRoomFull.
func (m *Manager) Join(roomID, peerID string, role entities.PeerRole) error {
	room, ok := m.rooms.Get(roomID)
	if !ok {
		return entities.ErrRoomNotFound
	}

	room.mu.Lock()
	if room.state == entities.RoomStateClosed {
		room.mu.Unlock()
		return entities.ErrRoomClosed
	}
	if _, rejoining := room.peers[peerID]; !rejoining && len(room.peers) >= maxPeers {
		room.mu.Unlock()
		return entities.ErrRoomFull
	}
	if _, exists := room.peers[peerID]; !exists {
		room.peers[peerID] = &peer{
			id:     peerID,
			role:   role,
			outbox: make(chan RelayMessage, eventBuffer),
		}
	}
	peerCount := len(room.peers)
	room.mu.Unlock()

	room.emit(Event{
		Type:      EventPeerJoined,
		RoomID:    roomID,
		SessionID: room.sessionID,
		PeerID:    peerID,
		Role:      role,
	})

	m.logger.Info("peer joined",
		zap.String("room_id", roomID),
		zap.String("peer_id", peerID),
		zap.String("role", string(role)),
		zap.Int("peer_count", peerCount),
	)
	return nil
}

// Relay forwards an opaque negotiation payload to the other peer in the
// room. The call is bounded by the configured signaling timeout; delivery to
// a peer that stopped draining fails rather than hanging the caller.
func (m *Manager) Relay(ctx context.Context, roomID, fromPeer string, payload json.RawMessage) error {
	room, ok := m.rooms.Get(roomID)
	if !ok {
		return entities.ErrRoomNotFound
	}

	room.mu.Lock()
	if room.state == entities.RoomStateClosed {
		room.mu.Unlock()
		return entities.ErrRoomClosed
	}
	if len(room.peers) < maxPeers {
		room.mu.Unlock()
		return entities.ErrPeerNotFound
	}
	var target *peer
	for id, p := range room.peers {
		if id != fromPeer {
			target = p
		}
	}
	room.mu.Unlock()

	if target == nil {
		return entities.ErrPeerNotFound
	}

	timer := time.NewTimer(m.cfg.OpTimeout)
	defer timer.Stop()
	select {
	case target.outbox <- RelayMessage{From: fromPeer, Payload: payload}:
		metrics.RelayedMessages.Inc()
		return nil
	case <-timer.C:
		return entities.ErrSignalingTimeout
	case <-ctx.Done():
		return entities.ErrSignalingTimeout
	}
}

// Outbox returns the delivery channel for a peer's relayed messages. The
// signaling transport drains this channel onto the peer's socket.
func (m *Manager) Outbox(roomID, peerID string) (<-chan RelayMessage, error) {
	room, ok := m.rooms.Get(roomID)
	if !ok {
		return nil, entities.ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	p, ok := room.peers[peerID]
	if !ok {
		return nil, entities.ErrPeerNotFound
	}
	return p.outbox, nil
}

// ReportQuality records a connection-quality sample for a peer and applies
// the degradation policy over the peer's sliding window.
func (m *Manager) ReportQuality(roomID, peerID string, sample entities.QualitySample) error {
	room, ok := m.rooms.Get(roomID)
	if !ok {
		return entities.ErrRoomNotFound
	}

	room.mu.Lock()
	if room.state == entities.RoomStateClosed {
		room.mu.Unlock()
		return entities.ErrRoomClosed
	}
	p, ok := room.peers[peerID]
	if !ok {
		room.mu.Unlock()
		return entities.ErrPeerNotFound
	}

	p.addSample(sample, m.cfg.WindowSize)
	avg := p.windowAverage()
	now := m.now()

	var degraded, lost bool
	if avg >= m.cfg.CriticalPacketLoss {
		if p.criticalSince == nil {
			since := now
			p.criticalSince = &since
		} else if now.Sub(*p.criticalSince) >= m.cfg.SustainedCritical {
			lost = true
		}
	} else {
		p.criticalSince = nil
	}

	if !lost && avg >= m.cfg.DegradedPacketLoss && room.state == entities.RoomStateOpen {
		room.state = entities.RoomStateDegraded
		degraded = true
	}

	if lost {
		room.state = entities.RoomStateClosed
	}
	room.mu.Unlock()

	if degraded {
		metrics.QualityTransitions.WithLabelValues(string(entities.RoomStateDegraded)).Inc()
		room.emit(Event{
			Type:      EventQualityChanged,
			RoomID:    roomID,
			SessionID: room.sessionID,
			PeerID:    peerID,
			State:     entities.RoomStateDegraded,
		})
		m.logger.Warn("room degraded",
			zap.String("room_id", roomID),
			zap.String("peer_id", peerID),
			zap.Float64("window_avg_loss", avg),
		)
	}

	if lost {
		metrics.QualityTransitions.WithLabelValues(string(entities.RoomStateClosed)).Inc()
		room.emit(Event{
			Type:      EventConnectionLost,
			RoomID:    roomID,
			SessionID: room.sessionID,
			PeerID:    peerID,
			State:     entities.RoomStateClosed,
		})
		m.logger.Warn("connection lost",
			zap.String("room_id", roomID),
			zap.String("peer_id", peerID),
			zap.Float64("window_avg_loss", avg),
		)
		m.release(room)
	}
	return nil
}

// CloseRoom closes a room and releases peer registrations. Closing an
// already-closed room is a no-op.
func (m *Manager) CloseRoom(roomID string) {
	room, ok := m.rooms.Get(roomID)
	if !ok {
		return
	}

	room.mu.Lock()
	if room.state == entities.RoomStateClosed {
		room.mu.Unlock()
		return
	}
	room.state = entities.RoomStateClosed
	room.mu.Unlock()

	room.emit(Event{
		Type:      EventRoomClosed,
		RoomID:    roomID,
		SessionID: room.sessionID,
		State:     entities.RoomStateClosed,
	})
	m.release(room)
	m.logger.Info("room closed", zap.String("room_id", roomID))
}

// Room looks up an open room by id
func (m *Manager) Room(roomID string) (*Room, bool) {
	return m.rooms.Get(roomID)
}

// RoomForSession returns the open room bound to a session, if any
func (m *Manager) RoomForSession(sessionID uuid.UUID) (*Room, bool) {
	return m.rooms.Get(sessionKey(sessionID))
}

// release removes a closed room from the registry so the session may open a
// replacement
func (m *Manager) release(room *Room) {
	m.rooms.Delete(room.id)
	m.rooms.Delete(sessionKey(room.sessionID))
	metrics.ActiveRooms.Dec()
}

func sessionKey(sessionID uuid.UUID) string {
	return "session:" + sessionID.String()
}
