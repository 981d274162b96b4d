package ports

import (
	"context"

	"github.com/focusflow/focusflow-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name, tier string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
