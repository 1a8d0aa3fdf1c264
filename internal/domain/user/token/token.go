package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind discriminates the two TTL classes. An access token authorizes resource
// requests; a refresh token only authorizes minting a new pair. The kind is
// embedded in the claims so one can never be verified as the other.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID uint64 `json:"uid"`
	Email  string `json:"email"`
	Kind   Kind   `json:"tkn"`
}

type Issuer interface {
	GenerateAccessToken(userID uint64, email string) (token string, exp time.Time, err error)
	GenerateRefreshToken(userID uint64, email string) (token string, exp time.Time, err error)
	ValidateAccessToken(token string) (Claims, error)
	ValidateRefreshToken(token string) (Claims, error)
}
