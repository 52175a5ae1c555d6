package auth

import "github.com/golang-jwt/jwt/v5"

// Authenticator validates bearer tokens issued by the accounts service.
type Authenticator interface {
	ValidateAccessToken(token string) (*jwt.Token, error)
	Principal(token *jwt.Token) (*Principal, error)
}

// Principal is the authenticated user a request acts on behalf of.
type Principal struct {
	ID   int64  `json:"id"`
	Role string `json:"role,omitempty"`
}
