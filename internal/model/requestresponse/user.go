package requestresponse

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	Token    string `json:"token" example:"fixed_admin_token"`
	Email    string `json:"email" example:"teacher@school.kz"`
	Password string `json:"password" example:"P@ssw0rd!"`
	RoleUUID string `json:"role_uuid" example:"c2f9f6d0-1f54-4d35-a1b7-0987654321cd"`
}

// RegisterResponse : успешный ответ на регистрацию
type RegisterResponse struct {
	Response struct {
		UserUUID string `json:"user_uuid"`
		Email    string `json:"email"`
	} `json:"response"`
}

// UpdatePasswordRequest : запрос на смену пароля
type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" example:"N3wP@ssw0rd!"`
}
