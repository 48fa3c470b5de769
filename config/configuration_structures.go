package config

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// JWTConfig : секреты и время жизни для двух классов токенов.
// Access и refresh токены подписываются разными секретами.
type JWTConfig struct {
	AccessSecret    string `yaml:"access_secret"`
	RefreshSecret   string `yaml:"refresh_secret"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

// SessionConfig : параметры менеджера сессий.
// RenewalHorizon — порог раннего обновления: если refresh токен истекает позже,
// чем через этот интервал, ротация записи о выдаче не выполняется.
// AliasTTL — время жизни алиаса в кэше; пустое значение означает TTL access токена.
type SessionConfig struct {
	RenewalHorizon string `yaml:"renewal_horizon"`
	AliasTTL       string `yaml:"alias_ttl"`
}

type AdminConfig struct {
	AdminToken string `yaml:"admin_token"`
}
