package model_test

import (
	"testing"

	"education-server/internal/model"

	"github.com/stretchr/testify/assert"
)

// 1. Разбор валидного блоба
func TestParsePermissionTree_Valid(t *testing.T) {
	tree, err := model.ParsePermissionTree([]byte(`{"course":{"view":true,"create":false},"classroom":{"view":true}}`))

	assert.NoError(t, err)
	assert.True(t, tree.Allows("course.view"))
	assert.False(t, tree.Allows("course.create"))
	assert.True(t, tree.Allows("classroom.view"))
}

// 2. Пустой блоб — пустое дерево, всё запрещено
func TestParsePermissionTree_Empty(t *testing.T) {
	tree, err := model.ParsePermissionTree(nil)

	assert.NoError(t, err)
	assert.False(t, tree.Allows("course.view"))
}

// 3. Некорректный JSON
func TestParsePermissionTree_Malformed(t *testing.T) {
	_, err := model.ParsePermissionTree([]byte(`{"course":`))

	assert.Error(t, err)
}

// 4. Отсутствие ключа на любом уровне — запрет, а не паника
func TestAllows_MissingKeys(t *testing.T) {
	tree := model.PermissionTree{"course": {"view": true}}

	assert.False(t, tree.Allows("course.delete"))
	assert.False(t, tree.Allows("role.delete"))
	assert.False(t, tree.Allows("course"))
	assert.False(t, tree.Allows(""))
}

// 5. Путь глубже двух уровней не разрешается
func TestAllows_DeepPath(t *testing.T) {
	tree := model.PermissionTree{"course": {"view": true}}

	assert.False(t, tree.Allows("course.view.extra"))
}
