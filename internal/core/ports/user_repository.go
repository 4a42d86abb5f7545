package ports

import (
	"context"

	"github.com/saferide/kids-api/internal/core/domain"
)

// UserRepository resolves identities against the user store. Lookups are
// case-normalized on email and do not filter on active status; callers
// decide whether an inactive account is an error.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
