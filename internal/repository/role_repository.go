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

type RoleRepository struct {
	*config.Database
}

func NewRoleRepository(database *config.Database) *RoleRepository {
	return &RoleRepository{database}
}

// FindByUserUUID загружает роль пользователя вместе с сериализованным деревом прав.
// Возвращает (nil, nil), если пользователь или его роль больше не существуют.
func (r *RoleRepository) FindByUserUUID(ctx context.Context, userUUID string) (*model.Role, error) {
	query := `
	SELECT r.uuid, r.branch_uuid, r.name, r.role_type, r.permissions, r.created_at
	FROM roles r
	JOIN users u ON u.role_uuid = r.uuid
	WHERE u.uuid = $1
	`

	var role model.Role
	err := sqlx.GetContext(ctx, r.DB, &role, query, userUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.WrapUnavailable("[RoleRepo] не удалось загрузить роль пользователя", err)
	}

	return &role, nil
}
