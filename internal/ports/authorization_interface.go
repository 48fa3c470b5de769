package ports

import (
	"context"

	"education-server/internal/model"
)

type RoleRepositoryInterface interface {
	FindByUserUUID(ctx context.Context, userUUID string) (*model.Role, error)
}

type AuthorizationServiceInterface interface {
	Authorize(ctx context.Context, userUUID string, required []string) (*model.AccessContext, error)
}
