package ports

import (
	"context"

	"github.com/threat0512/HealthFactAI/internal/core/domain/user"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	ExistsUsername(ctx context.Context, username string) (bool, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
	UpdateProgress(ctx context.Context, u *user.User) error
}
