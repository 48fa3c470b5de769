package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PermissionTree : дерево прав роли — домен -> действие -> разрешено.
// Хранится на роли сериализованным блобом и разбирается при каждой проверке.
type PermissionTree map[string]map[string]bool

func ParsePermissionTree(raw []byte) (PermissionTree, error) {
	if len(raw) == 0 {
		return PermissionTree{}, nil
	}

	var tree PermissionTree
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("ошибка разбора дерева прав: %w", err)
	}
	return tree, nil
}

// Allows проверяет право вида "домен.действие".
// Отсутствие ключа на любом уровне означает запрет.
func (t PermissionTree) Allows(path string) bool {
	domain, action, ok := strings.Cut(path, ".")
	if !ok {
		return false
	}
	return t[domain][action]
}

// AccessContext : разрешённый контекст запроса после авторизации.
// Обработчики могут использовать дерево напрямую для точечных проверок.
type AccessContext struct {
	RoleType    string
	Permissions PermissionTree
}
