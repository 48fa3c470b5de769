package repository

import (
	"context"
	"database/sql"
	"errors"

	"education-server/config"
	"education-server/internal/model"
	"education-server/internal/util"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, branch_uuid, email, password_hash, role_uuid)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING uuid, branch_uuid, email, role_uuid, created_at
	`

	createdUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query, user.UUID, user.BranchUUID, user.Email, user.PasswordHash, user.RoleUUID).
		Scan(&createdUser.UUID, &createdUser.BranchUUID, &createdUser.Email, &createdUser.RoleUUID, &createdUser.CreatedAt)

	if err != nil {
		return nil, util.WrapUnavailable("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByEmail : ищет пользователя по email; (nil, nil) если не найден
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT uuid, branch_uuid, email, password_hash, role_uuid, created_at FROM users WHERE email = $1`
	var user model.User
	err := sqlx.GetContext(ctx, r.DB, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.WrapUnavailable("[UserRepo] не удалось найти пользователя по email", err)
	}
	return &user, nil
}

// FindByUUID : ищет пользователя по UUID; (nil, nil) если не найден
func (r *UserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	query := `SELECT uuid, branch_uuid, email, password_hash, role_uuid, created_at FROM users WHERE uuid = $1`
	var user model.User
	err := sqlx.GetContext(ctx, r.DB, &user, query, uuid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.WrapUnavailable("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return &user, nil
}

// Exists : проверяет, что пользователь всё ещё существует
func (r *UserRepository) Exists(ctx context.Context, uuid string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE uuid = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, uuid).Scan(&exists); err != nil {
		return false, util.WrapUnavailable("[UserRepo] ошибка проверки пользователя", err)
	}
	return exists, nil
}

// UpdatePassword : меняет пароль пользователя
func (r *UserRepository) UpdatePassword(ctx context.Context, uuid, newPasswordHash string) error {
	query := `UPDATE users SET password_hash = $2 WHERE uuid = $1`
	_, err := r.DB.ExecContext(ctx, query, uuid, newPasswordHash)
	if err != nil {
		return util.WrapUnavailable("[UserRepo] не удалось обновить пароль", err)
	}
	return nil
}
