package model

import "time"

const TokenTypeRefresh = "REFRESH_TOKEN"

// RefreshToken : запись о выдаче refresh-токена.
// HashToken входит в claims токена и хранится рядом с записью,
// поэтому отзыв выполняется удалением записей по hash_token,
// а не по значению самого токена.
type RefreshToken struct {
	Token     string    `db:"token"`
	UserUUID  string    `db:"user_uuid"`
	Type      string    `db:"type"`
	HashToken string    `db:"hash_token"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// SessionTokens : результат успешного login или refresh.
// RefreshToken пуст при дешёвом обновлении — действующий токен остаётся в силе.
type SessionTokens struct {
	AccessAlias      string
	AccessTTL        time.Duration
	RefreshToken     string
	RefreshExpiresAt time.Time
}
