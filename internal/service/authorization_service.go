package service

import (
	"context"

	"education-server/internal/model"
	"education-server/internal/ports"
	"education-server/internal/util"
)

// AuthorizationService проверяет права запроса по дереву роли.
// Роль и дерево загружаются из БД на каждую проверку — изменение прав
// вступает в силу без повторного входа пользователя.
type AuthorizationService struct {
	roleRepository ports.RoleRepositoryInterface
}

func NewAuthorizationService(roleRepository ports.RoleRepositoryInterface) *AuthorizationService {
	return &AuthorizationService{roleRepository}
}

// Authorize разрешает запрос, если ЛЮБОЙ из путей required даёт true в дереве роли.
// Пустой список required означает открытый маршрут. Отсутствие ключа в дереве —
// запрет, а не ошибка.
func (s *AuthorizationService) Authorize(ctx context.Context, userUUID string, required []string) (*model.AccessContext, error) {
	if len(required) == 0 {
		return &model.AccessContext{}, nil
	}

	if userUUID == "" {
		return nil, model.ErrUnauthorized
	}

	role, err := s.roleRepository.FindByUserUUID(ctx, userUUID)
	if err != nil {
		return nil, util.LogError("не удалось загрузить роль пользователя", err)
	}
	if role == nil {
		// пользователь или его роль удалены после выдачи токена
		return nil, model.ErrForbidden
	}

	tree, err := model.ParsePermissionTree(role.Permissions)
	if err != nil {
		return nil, util.LogError("некорректное дерево прав роли "+role.UUID, err)
	}

	access := &model.AccessContext{
		RoleType:    role.RoleType,
		Permissions: tree,
	}

	for _, path := range required {
		if tree.Allows(path) {
			return access, nil
		}
	}

	return nil, model.ErrForbidden
}
