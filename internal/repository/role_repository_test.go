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

func newMockRoleRepo(t *testing.T) (*repository.RoleRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return repository.NewRoleRepository(&config.Database{DB: sqlxDB}), mock
}

// 1. Роль пользователя загружается вместе с блобом прав
func TestFindByUserUUID(t *testing.T) {
	repo, mock := newMockRoleRepo(t)

	rows := sqlmock.NewRows([]string{"uuid", "branch_uuid", "name", "role_type", "permissions", "created_at"}).
		AddRow("r1", "b1", "Преподаватель", model.RoleTypeTeacher, []byte(`{"course":{"view":true}}`), time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT r.uuid, r.branch_uuid, r.name, r.role_type, r.permissions, r.created_at`)).
		WithArgs("u1").
		WillReturnRows(rows)

	role, err := repo.FindByUserUUID(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Equal(t, "r1", role.UUID)
	assert.Equal(t, model.RoleTypeTeacher, role.RoleType)

	tree, err := model.ParsePermissionTree(role.Permissions)
	assert.NoError(t, err)
	assert.True(t, tree.Allows("course.view"))
}

// 2. Пользователь без роли — (nil, nil), отказ решает сервис авторизации
func TestFindByUserUUID_NotFound(t *testing.T) {
	repo, mock := newMockRoleRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT r.uuid, r.branch_uuid, r.name, r.role_type, r.permissions, r.created_at`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "branch_uuid", "name", "role_type", "permissions", "created_at"}))

	role, err := repo.FindByUserUUID(context.Background(), "ghost")

	assert.NoError(t, err)
	assert.Nil(t, role)
}
