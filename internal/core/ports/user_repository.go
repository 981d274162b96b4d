package ports

import (
	"context"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// List returns all users, newest first. Admin dashboard only.
	List(ctx context.Context, limit int) ([]*domain.User, error)
}
