package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"education-server/config"
	"education-server/internal/model"
	"education-server/internal/ports"
	"education-server/internal/security"

	"github.com/google/uuid"
)

type UserService struct {
	userRepository ports.UserRepository
	admin          *config.AdminConfig
}

func NewUserService(userRepository ports.UserRepository, admin *config.AdminConfig) *UserService {
	return &UserService{
		userRepository: userRepository,
		admin:          admin,
	}
}

// Register создаёт учётную запись. Операция закрыта токеном администратора.
func (s *UserService) Register(ctx context.Context, adminToken, email, password, roleUUID string) (*model.User, error) {
	if s.admin == nil || adminToken != s.admin.AdminToken {
		return nil, fmt.Errorf("[UserService] неверный токен администратора")
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("[UserService] некорректный email")
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	existing, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка поиска пользователя: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("[UserService] пользователь с таким email уже существует")
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		RoleUUID:     roleUUID,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка создания пользователя: %w", err)
	}

	return created, nil
}

// UpdatePassword меняет пароль пользователя
func (s *UserService) UpdatePassword(ctx context.Context, userUUID, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return fmt.Errorf("[UserService] %w", err)
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, userUUID, hash); err != nil {
		return fmt.Errorf("[UserService] ошибка смены пароля: %w", err)
	}

	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("пароль должен содержать минимум 8 символов")
	}

	var hasLetter, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return fmt.Errorf("пароль должен содержать буквы и цифры")
	}

	return nil
}
