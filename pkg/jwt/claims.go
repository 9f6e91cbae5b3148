package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoomClaims represents the claims carried by a room peer token
type RoomClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	RoomID    string    `json:"room_id"`
	PeerID    string    `json:"peer_id"`
	Role      string    `json:"role"`
	jwt.RegisteredClaims
}
