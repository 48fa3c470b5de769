package requestresponse

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Email    string `json:"email" example:"a@x.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// SessionResponse : ответ на успешный login или refresh.
// Клиент получает алиас access токена, сам подписанный токен наружу не выходит.
type SessionResponse struct {
	Response struct {
		AccessToken string `json:"access_token" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		ExpiresIn   int64  `json:"expires_in" example:"900"`
	} `json:"response"`
}

// CurrentUserResponse : информация о текущем пользователе
type CurrentUserResponse struct {
	Response struct {
		UserUUID string `json:"user_uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		Email    string `json:"email" example:"a@x.com"`
		RoleType string `json:"role_type" example:"teacher"`
	} `json:"response"`
}

// LogoutResponse : ответ на завершение сессии
type LogoutResponse struct {
	Response struct {
		LoggedOut bool `json:"logged_out" example:"true"`
	} `json:"response"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"401"`
	Text string `json:"text" example:"не авторизован"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
