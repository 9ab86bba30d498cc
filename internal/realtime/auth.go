package realtime

import (
	"errors"
	"fmt"

	"peer-support-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Connection-setup failures. ErrMissingToken means no credential was
// presented at all; ErrInvalidToken covers tampered, malformed and expired
// credentials. Either one aborts the handshake before any room join.
var (
	ErrMissingToken = errors.New("authentication required")
	ErrInvalidToken = errors.New("invalid credential")
)

// Identity is the authenticated principal bound to a connection. It is fixed
// at handshake time and never changes for the connection's lifetime.
type Identity struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

// VerifyToken validates the bearer credential against the shared secret and
// extracts the identity. Expiry is enforced by the jwt library during Parse.
func VerifyToken(tokenStr, secret string) (*Identity, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidToken
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	role := entity.UserRole(roleStr)
	if !role.IsValid() {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: userID, Role: role}, nil
}
