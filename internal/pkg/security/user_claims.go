package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Leakerflow"
	JWTExpirationTime        = time.Hour * 24
)

// UserClaims carries the business identity embedded in a token.
type UserClaims struct {
	UserID uint64   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}
