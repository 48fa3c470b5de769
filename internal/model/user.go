package model

import "time"

type User struct {
	UUID         string    `db:"uuid" json:"uuid"`
	BranchUUID   string    `db:"branch_uuid" json:"branch_uuid"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	RoleUUID     string    `db:"role_uuid" json:"role_uuid"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
