package identity

import (
	"context"

	"github.com/playcircuit/gateway/internal/model"
)

// StaticVerifier resolves tokens from a fixed map. It exists for tests and
// local development where no identity provider is running.
type StaticVerifier struct {
	tokens map[string]model.UserID
}

// Ensure StaticVerifier implements Verifier
var _ Verifier = (*StaticVerifier)(nil)

// NewStaticVerifier creates a verifier backed by the given token -> uid map
func NewStaticVerifier(tokens map[string]model.UserID) *StaticVerifier {
	return &StaticVerifier{tokens: tokens}
}

// VerifyToken looks the token up in the static map
func (v *StaticVerifier) VerifyToken(ctx context.Context, token string) (model.UserID, error) {
	uid, ok := v.tokens[token]
	if !ok {
		return "", ErrInvalidToken
	}
	return uid, nil
}
