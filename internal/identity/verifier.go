package identity

import (
	"context"
	"errors"

	"github.com/playcircuit/gateway/internal/model"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Verifier checks a credential token issued by the external identity
// provider and resolves it to a user identity. Implementations may perform
// network round-trips; callers pass a context carrying their deadline.
type Verifier interface {
	VerifyToken(ctx context.Context, token string) (model.UserID, error)
}
