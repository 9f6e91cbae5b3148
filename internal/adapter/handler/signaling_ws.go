package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/talentwire/interview-orchestrator/errors"
	"github.com/talentwire/interview-orchestrator/internal/domain/entities"
	"github.com/talentwire/interview-orchestrator/internal/usecase/signaling"
	"github.com/talentwire/interview-orchestrator/pkg/jwt"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// wsInbound is a message from a peer's socket
type wsInbound struct {
	Type       string          `json:"type"` // "signal" or "quality"
	Payload    json.RawMessage `json:"payload,omitempty"`
	PacketLoss float64         `json:"packet_loss,omitempty"`
	RTTMillis  float64         `json:"rtt_ms,omitempty"`
}

// wsOutbound is a message written to a peer's socket
type wsOutbound struct {
	Type    string          `json:"type"` // "signal" or "error"
	From    string          `json:"from,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Code    string          `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Signaling bridges peer websockets onto the room manager. Framing and
// transport security end here; the room manager never sees the socket.
type Signaling struct {
	rooms    *signaling.Manager
	tokens   *jwt.Manager
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewSignaling creates a new signaling transport handler
func NewSignaling(rooms *signaling.Manager, tokens *jwt.Manager, logger *zap.Logger) *Signaling {
	return &Signaling{
		rooms:  rooms,
		tokens: tokens,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Connect upgrades a peer connection and joins it to its room. The room and
// role come from the peer token, never from the client payload.
func (h *Signaling) Connect(c echo.Context) error {
	claims, err := h.tokens.ValidateRoomToken(c.QueryParam("token"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated())
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	defer conn.Close()

	if err := h.rooms.Join(claims.RoomID, claims.PeerID, entities.PeerRole(claims.Role)); err != nil {
		h.writeError(conn, err)
		return nil
	}
	outbox, err := h.rooms.Outbox(claims.RoomID, claims.PeerID)
	if err != nil {
		h.writeError(conn, err)
		return nil
	}

	h.logger.Info("peer socket connected",
		zap.String("room_id", claims.RoomID),
		zap.String("peer_id", claims.PeerID),
		zap.String("role", claims.Role),
	)

	done := make(chan struct{})
	go h.writePump(conn, outbox, done)
	h.readPump(c, conn, claims)
	close(done)

	h.logger.Info("peer socket disconnected",
		zap.String("room_id", claims.RoomID),
		zap.String("peer_id", claims.PeerID),
	)
	return nil
}

// readPump consumes peer messages until the socket closes
func (h *Signaling) readPump(c echo.Context, conn *websocket.Conn, claims *jwt.RoomClaims) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg wsInbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.writeError(conn, apperrors.ErrInvalidArgument("malformed signaling message"))
			continue
		}

		switch msg.Type {
		case "signal":
			err := h.rooms.Relay(c.Request().Context(), claims.RoomID, claims.PeerID, msg.Payload)
			if err != nil {
				h.writeError(conn, err)
			}
		case "quality":
			err := h.rooms.ReportQuality(claims.RoomID, claims.PeerID, entities.QualitySample{
				PacketLoss: msg.PacketLoss,
				RTTMillis:  msg.RTTMillis,
				ReportedAt: time.Now(),
			})
			if err != nil {
				h.writeError(conn, err)
			}
		default:
			h.writeError(conn, apperrors.ErrInvalidArgument("unknown message type"))
		}
	}
}

// writePump drains the peer's outbox onto the socket and keeps it alive
func (h *Signaling) writePump(conn *websocket.Conn, outbox <-chan signaling.RelayMessage, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-outbox:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(wsOutbound{
				Type:    "signal",
				From:    msg.From,
				Payload: msg.Payload,
			}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *Signaling) writeError(conn *websocket.Conn, err error) {
	out := wsOutbound{Type: "error", Message: err.Error()}

	switch err {
	case entities.ErrRoomNotFound:
		out.Code = apperrors.ErrorCode_ROOM_NOT_FOUND.String()
	case entities.ErrRoomFull:
		out.Code = apperrors.ErrorCode_ROOM_FULL.String()
	case entities.ErrRoomClosed:
		out.Code = apperrors.ErrorCode_ROOM_CLOSED.String()
	case entities.ErrPeerNotFound:
		out.Code = apperrors.ErrorCode_PEER_NOT_FOUND.String()
	case entities.ErrSignalingTimeout:
		out.Code = apperrors.ErrorCode_SIGNALING_TIMEOUT.String()
	default:
		out.Code = apperrors.ErrorCode_INVALID_ARGUMENT.String()
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteJSON(out)
}
