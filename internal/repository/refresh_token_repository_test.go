package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"education-server/config"
	"education-server/internal/model"
	"education-server/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockRefreshRepo(t *testing.T) (*repository.RefreshTokenRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return repository.NewRefreshTokenRepository(&config.Database{DB: sqlxDB}), mock
}

// 1. Сохранение записи о выдаче: сначала чистятся просроченные записи пользователя
func TestSaveRefreshToken(t *testing.T) {
	repo, mock := newMockRefreshRepo(t)

	record := &model.RefreshToken{
		Token:     "signed-refresh",
		UserUUID:  "u1",
		Type:      model.TokenTypeRefresh,
		HashToken: "hash-1",
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(720 * time.Hour),
	}

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM refresh_tokens WHERE user_uuid = $1 AND expires_at <= NOW()`)).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO refresh_tokens (token, user_uuid, type, hash_token, created_at, expires_at)`)).
		WithArgs(record.Token, record.UserUUID, record.Type, record.HashToken, record.CreatedAt, record.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SaveRefreshToken(context.Background(), record)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 2. Отзыв по hash_token возвращает число удалённых записей
func TestDeleteByHashToken(t *testing.T) {
	repo, mock := newMockRefreshRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM refresh_tokens WHERE hash_token = $1`)).
		WithArgs("hash-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteByHashToken(context.Background(), "hash-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 3. Повторный отзыв: ноль строк — не ошибка, решение принимает сервис
func TestDeleteByHashToken_AlreadyGone(t *testing.T) {
	repo, mock := newMockRefreshRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM refresh_tokens WHERE hash_token = $1`)).
		WithArgs("hash-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteByHashToken(context.Background(), "hash-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

// 4. Ошибка БД различима как инфраструктурная
func TestDeleteByHashToken_DatabaseDown(t *testing.T) {
	repo, mock := newMockRefreshRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM refresh_tokens WHERE hash_token = $1`)).
		WithArgs("hash-1").
		WillReturnError(assert.AnError)

	_, err := repo.DeleteByHashToken(context.Background(), "hash-1")

	assert.ErrorIs(t, err, model.ErrUnavailable)
}

// 5. Проверка существования записи о выдаче
func TestExistsByHashToken(t *testing.T) {
	repo, mock := newMockRefreshRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM refresh_tokens WHERE hash_token = $1 AND expires_at > NOW())`)).
		WithArgs("hash-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByHashToken(context.Background(), "hash-1")

	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
