package ports

import (
	"context"

	"education-server/internal/model"
)

type SessionService interface {
	Login(ctx context.Context, email, password string) (*model.SessionTokens, error)
	Refresh(ctx context.Context, refreshToken, oldAlias string) (*model.SessionTokens, error)
	Logout(ctx context.Context, refreshToken, oldAlias string) error
}
