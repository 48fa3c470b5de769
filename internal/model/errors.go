package model

import "errors"

// Ошибки аутентификации и авторизации терминальны для запроса.
// Несуществующий логин и неверный пароль намеренно неразличимы.
var (
	ErrInvalidCredentials = errors.New("неверный логин или пароль")
	ErrUnauthorized       = errors.New("не авторизован")
	ErrExpiredRefresh     = errors.New("refresh токен просрочен")
	ErrForbidden          = errors.New("доступ запрещён")
	ErrUnavailable        = errors.New("сервис временно недоступен")
)
