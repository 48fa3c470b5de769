package ports

import (
	"context"

	"education-server/internal/model"
)

// UserRepository : хранилище учётных записей.
// Методы поиска возвращают (nil, nil), если запись не найдена:
// отсутствие пользователя — не инфраструктурная ошибка.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
	Exists(ctx context.Context, uuid string) (bool, error)
	UpdatePassword(ctx context.Context, uuid, newPasswordHash string) error
}

type UserService interface {
	Register(ctx context.Context, adminToken, email, password, roleUUID string) (*model.User, error)
	UpdatePassword(ctx context.Context, uuid, newPassword string) error
}
