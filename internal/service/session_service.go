package service

import (
	"context"
	"errors"
	"log"
	"time"

	"education-server/config"
	"education-server/internal/model"
	"education-server/internal/ports"
	"education-server/internal/security"
	"education-server/internal/util"
)

// SessionService управляет жизненным циклом сессии: login, обмен refresh токена, logout.
// Состояние сессии неявно и задаётся существующими токенами и записями о выдаче,
// никаких блокировок между конкурентными запросами нет: гонка ротации
// разрешается тем, что удаление записи по hash_token срабатывает только один раз.
type SessionService struct {
	userRepository    ports.UserRepository
	refreshRepository ports.RefreshTokenRepositoryInterface
	tokenService      ports.TokenServiceInterface
	tokenCache        ports.AliasCacheRepository
	renewalHorizon    time.Duration
	aliasTTL          time.Duration
}

func NewSessionService(
	userRepository ports.UserRepository,
	refreshRepository ports.RefreshTokenRepositoryInterface,
	tokenService ports.TokenServiceInterface,
	tokenCache ports.AliasCacheRepository,
	cfg *config.SessionConfig,
) (*SessionService, error) {
	horizon, err := time.ParseDuration(cfg.RenewalHorizon)
	if err != nil {
		return nil, util.LogError("ошибка парсинга renewal_horizon", err)
	}

	var aliasTTL time.Duration
	if cfg.AliasTTL != "" {
		aliasTTL, err = time.ParseDuration(cfg.AliasTTL)
		if err != nil {
			return nil, util.LogError("ошибка парсинга alias_ttl", err)
		}
	}

	return &SessionService{
		userRepository:    userRepository,
		refreshRepository: refreshRepository,
		tokenService:      tokenService,
		tokenCache:        tokenCache,
		renewalHorizon:    horizon,
		aliasTTL:          aliasTTL,
	}, nil
}

// Login выполняет аутентификацию по email и паролю.
// Несуществующий email и неверный пароль дают одинаковый результат,
// при этом bcrypt-сравнение выполняется в обоих случаях.
func (s *SessionService) Login(ctx context.Context, email, password string) (*model.SessionTokens, error) {
	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err // инфраструктурная ошибка, не ошибка аутентификации
	}

	if user == nil {
		security.CheckDummyPassword(password)
		return nil, model.ErrInvalidCredentials
	}
	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, model.ErrInvalidCredentials
	}

	accessToken, accessTTL, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, util.LogError("ошибка генерации access токена", err)
	}

	refreshToken, hashToken, expiresAt, err := s.tokenService.GenerateRefreshToken(user)
	if err != nil {
		return nil, util.LogError("ошибка генерации refresh токена", err)
	}

	record := &model.RefreshToken{
		Token:     refreshToken,
		UserUUID:  user.UUID,
		Type:      model.TokenTypeRefresh,
		HashToken: hashToken,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	}
	if err := s.refreshRepository.SaveRefreshToken(ctx, record); err != nil {
		return nil, util.LogError("ошибка сохранения refresh токена", err)
	}

	alias, err := s.mintAlias(ctx, accessToken, accessTTL)
	if err != nil {
		return nil, err
	}

	return &model.SessionTokens{
		AccessAlias:      alias,
		AccessTTL:        accessTTL,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: expiresAt,
	}, nil
}

// Refresh обменивает refresh токен на новый access алиас.
// Если до истечения токена дальше порога раннего обновления — дешёвое обновление:
// запись о выдаче не трогаем. Иначе — полная ротация: отзыв старой записи по
// hash_token и выпуск нового refresh токена. Ноль удалённых записей означает
// повторное использование уже ротированного токена — отказ без уточнения причины.
func (s *SessionService) Refresh(ctx context.Context, refreshToken, oldAlias string) (*model.SessionTokens, error) {
	if refreshToken == "" {
		return nil, model.ErrUnauthorized
	}

	claims, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, model.ErrExpiredRefresh) {
			return nil, model.ErrExpiredRefresh
		}
		return nil, model.ErrUnauthorized
	}

	exists, err := s.userRepository.Exists(ctx, claims.UserUUID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, model.ErrUnauthorized
	}

	user := &model.User{UUID: claims.UserUUID, Email: claims.Email}
	result := &model.SessionTokens{}

	if time.Until(claims.ExpiresAt.Time) > s.renewalHorizon {
		// дешёвое обновление: действующий refresh токен остаётся в силе,
		// но запись о выдаче должна существовать — иначе был logout
		live, err := s.refreshRepository.ExistsByHashToken(ctx, claims.HashToken)
		if err != nil {
			return nil, err
		}
		if !live {
			return nil, model.ErrUnauthorized
		}
	} else {
		deleted, err := s.refreshRepository.DeleteByHashToken(ctx, claims.HashToken)
		if err != nil {
			return nil, util.LogError("не удалось отозвать refresh токен", err)
		}
		if deleted == 0 {
			log.Printf("refresh токен пользователя %s уже был использован", claims.UserUUID)
			return nil, model.ErrUnauthorized
		}

		newRefreshToken, hashToken, expiresAt, err := s.tokenService.GenerateRefreshToken(user)
		if err != nil {
			return nil, util.LogError("ошибка генерации refresh токена", err)
		}

		record := &model.RefreshToken{
			Token:     newRefreshToken,
			UserUUID:  user.UUID,
			Type:      model.TokenTypeRefresh,
			HashToken: hashToken,
			CreatedAt: time.Now().UTC(),
			ExpiresAt: expiresAt,
		}
		if err := s.refreshRepository.SaveRefreshToken(ctx, record); err != nil {
			return nil, util.LogError("ошибка сохранения refresh токена", err)
		}

		result.RefreshToken = newRefreshToken
		result.RefreshExpiresAt = expiresAt
	}

	accessToken, accessTTL, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, util.LogError("ошибка генерации access токена", err)
	}

	alias, err := s.mintAlias(ctx, accessToken, accessTTL)
	if err != nil {
		return nil, err
	}

	s.dropAlias(ctx, oldAlias)

	result.AccessAlias = alias
	result.AccessTTL = accessTTL
	return result, nil
}

// Logout отзывает запись о выдаче и инвалидирует алиас access токена.
// Повторный logout тем же токеном не находит записи и завершается отказом.
func (s *SessionService) Logout(ctx context.Context, refreshToken, oldAlias string) error {
	if refreshToken == "" {
		return model.ErrUnauthorized
	}

	claims, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return model.ErrUnauthorized
	}

	deleted, err := s.refreshRepository.DeleteByHashToken(ctx, claims.HashToken)
	if err != nil {
		return util.LogError("не удалось отозвать refresh токен", err)
	}
	if deleted == 0 {
		return model.ErrUnauthorized
	}

	s.dropAlias(ctx, oldAlias)
	return nil
}

func (s *SessionService) mintAlias(ctx context.Context, accessToken string, accessTTL time.Duration) (string, error) {
	ttl := s.aliasTTL
	if ttl <= 0 {
		ttl = accessTTL
	}

	alias, err := s.tokenCache.MintAlias(ctx, accessToken, ttl)
	if err != nil {
		return "", util.LogError("ошибка сохранения access токена в кэше", err)
	}
	return alias, nil
}

// dropAlias инвалидирует предъявленный ранее алиас.
// Ошибка не фатальна: запись всё равно истечёт по TTL.
func (s *SessionService) dropAlias(ctx context.Context, alias string) {
	if alias == "" {
		return
	}
	if err := s.tokenCache.InvalidateAlias(ctx, alias); err != nil {
		log.Printf("не удалось инвалидировать алиас %s: %v", alias, err)
	}
}
