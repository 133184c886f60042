package identity

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/playcircuit/gateway/internal/model"
)

// JWTConfig defines how identity tokens are verified
type JWTConfig struct {
	Issuer   string
	Audience string
	Key      ed25519.PublicKey
}

// JWTVerifier validates ed25519-signed identity tokens locally.
// The identity provider signs tokens with the matching private key; this
// service only ever holds the public half.
type JWTVerifier struct {
	cfg JWTConfig
}

// Ensure JWTVerifier implements Verifier
var _ Verifier = (*JWTVerifier)(nil)

// NewJWTVerifier creates a verifier for the given issuer, audience and key
func NewJWTVerifier(cfg JWTConfig) (*JWTVerifier, error) {
	if cfg.Issuer == "" {
		return nil, errors.New("issuer is required")
	}
	if cfg.Audience == "" {
		return nil, errors.New("audience is required")
	}
	if len(cfg.Key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes", ed25519.PublicKeySize)
	}
	return &JWTVerifier{cfg: cfg}, nil
}

// ParsePublicKey decodes a base64-encoded ed25519 public key blob
func ParsePublicKey(encoded string) (ed25519.PublicKey, error) {
	encoded = strings.TrimSpace(encoded)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes", ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(raw), nil
}

// VerifyToken validates the token signature and registered claims and
// returns the subject as the user identity
func (v *JWTVerifier) VerifyToken(ctx context.Context, token string) (model.UserID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.cfg.Key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return model.UserID(claims.Subject), nil
}
