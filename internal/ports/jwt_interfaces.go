package ports

import (
	"context"
	"time"

	"education-server/internal/model"
	"education-server/internal/security"
)

type RefreshTokenRepositoryInterface interface {
	SaveRefreshToken(ctx context.Context, token *model.RefreshToken) error
	DeleteByHashToken(ctx context.Context, hashToken string) (int64, error)
	ExistsByHashToken(ctx context.Context, hashToken string) (bool, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *model.User) (string, time.Duration, error)
	GenerateRefreshToken(user *model.User) (string, string, time.Time, error)
	ValidateAccessToken(tokenStr string) (*security.Claims, error)
	ValidateRefreshToken(tokenStr string) (*security.Claims, error)
}
