package repository

import (
	"context"

	"education-server/config"
	"education-server/internal/model"
	"education-server/internal/util"
)

type RefreshTokenRepository struct {
	*config.Database
}

func NewRefreshTokenRepository(database *config.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{database}
}

// SaveRefreshToken сохраняет запись о выдаче refresh токена.
// Перед вставкой удаляет просроченные записи пользователя:
// expires_at выступает TTL-маркером, который потребляет само хранилище.
func (r *RefreshTokenRepository) SaveRefreshToken(ctx context.Context, refreshToken *model.RefreshToken) error {
	gc := `DELETE FROM refresh_tokens WHERE user_uuid = $1 AND expires_at <= NOW()`
	if _, err := r.DB.ExecContext(ctx, gc, refreshToken.UserUUID); err != nil {
		return util.WrapUnavailable("ошибка очистки просроченных refresh токенов", err)
	}

	query := `INSERT INTO refresh_tokens (token, user_uuid, type, hash_token, created_at, expires_at)
				VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		refreshToken.Token,
		refreshToken.UserUUID,
		refreshToken.Type,
		refreshToken.HashToken,
		refreshToken.CreatedAt,
		refreshToken.ExpiresAt,
	)

	if err != nil {
		return util.WrapUnavailable("ошибка вставки refresh токена в БД", err)
	}

	return nil
}

// DeleteByHashToken отзывает выдачу, удаляя записи по hash_token.
// Ноль удалённых строк означает, что запись уже была отозвана.
func (r *RefreshTokenRepository) DeleteByHashToken(ctx context.Context, hashToken string) (int64, error) {
	query := `DELETE FROM refresh_tokens WHERE hash_token = $1`

	result, err := r.DB.ExecContext(ctx, query, hashToken)
	if err != nil {
		return 0, util.WrapUnavailable("не удалось удалить refresh токен", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, util.WrapUnavailable("не удалось проверить, удалён ли токен", err)
	}

	return rowsAffected, nil
}

// ExistsByHashToken проверяет, что запись о выдаче всё ещё существует
func (r *RefreshTokenRepository) ExistsByHashToken(ctx context.Context, hashToken string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM refresh_tokens WHERE hash_token = $1 AND expires_at > NOW())`

	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, hashToken).Scan(&exists); err != nil {
		return false, util.WrapUnavailable("ошибка проверки refresh токена", err)
	}

	return exists, nil
}
