package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyPasswordHash используется для выравнивания времени ответа,
// когда пользователь с указанным email не найден.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хэширования пароля: %w", err)
	}
	return string(hash), nil
}

// CheckPassword сравнивает пароль со стандартным bcrypt-хэшем
func CheckPassword(password, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}

// CheckDummyPassword выполняет сравнение с фиктивным хэшем.
// Результат не важен, важна только затраченная работа.
func CheckDummyPassword(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(password))
}
