package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storehub/internal/model"
)

// TokenExpiry is the absolute lifetime of an issued token. There is no
// revocation: a token stays valid until expiry regardless of later account
// changes.
const TokenExpiry = 24 * time.Hour

var (
	// ErrTokenMalformed is returned when a token cannot be parsed at all.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenExpired is returned when a token is past its expiry claim.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenSignatureInvalid is returned when the signature does not verify.
	ErrTokenSignatureInvalid = errors.New("invalid token signature")
	// ErrTokenInvalid is returned for any other verification failure.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims are the identity claims embedded in every token. A verified Claims
// value is the authenticated caller's context for the rest of the request.
type Claims struct {
	UserID uint       `json:"id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed session tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given shared secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateToken produces a signed token embedding the identity claims with
// expiry 24 hours from issuance.
func (s *JWTService) GenerateToken(userID uint, email string, role model.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken checks signature and expiry and returns the claims. Any
// failure rejects the token, never falling back to an anonymous identity.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignatureInvalid
		default:
			return nil, ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
