package model

import "time"

// Классификация ролей. Сама метка доступ не выдаёт —
// решает только дерево прав, привязанное к роли.
const (
	RoleTypeSuperAdmin = "super_admin"
	RoleTypeManager    = "manager"
	RoleTypeTeacher    = "teacher"
	RoleTypeStudent    = "student"
)

type Role struct {
	UUID        string    `db:"uuid" json:"uuid"`
	BranchUUID  string    `db:"branch_uuid" json:"branch_uuid"`
	Name        string    `db:"name" json:"name"`
	RoleType    string    `db:"role_type" json:"role_type"`
	Permissions []byte    `db:"permissions" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
