package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager handles room peer token operations
type Manager struct {
	secret      string
	tokenExpiry time.Duration
	issuer      string
}

// NewManager creates a new JWT manager
func NewManager(secret string, tokenExpiry time.Duration) *Manager {
	return &Manager{
		secret:      secret,
		tokenExpiry: tokenExpiry,
		issuer:      "interview-orchestrator",
	}
}

// GenerateRoomToken generates the token a peer presents when connecting to
// the signaling transport. The token pins the peer to one room and one role.
func (m *Manager) GenerateRoomToken(sessionID uuid.UUID, roomID, peerID, role string) (string, error) {
	now := time.Now()
	claims := &RoomClaims{
		SessionID: sessionID,
		RoomID:    roomID,
		PeerID:    peerID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   peerID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// ValidateRoomToken validates and parses a room peer token
func (m *Manager) ValidateRoomToken(tokenString string) (*RoomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RoomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*RoomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// GetTokenExpiry returns the room token expiry duration
func (m *Manager) GetTokenExpiry() time.Duration {
	return m.tokenExpiry
}
