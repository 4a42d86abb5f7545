package ports

import (
	"context"

	"github.com/saferide/kids-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
	// Login returns a signed bearer token on success. Unknown email and
	// wrong password yield the same domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
