package security

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"education-server/config"
	"education-server/internal/model"
	"education-server/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserUUID  string `json:"user_uuid"`
	Email     string `json:"email"`
	HashToken string `json:"hash_token,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// GenerateAccessToken подписывает короткоживущий access токен.
// Наружу токен не отдаётся — клиент получает только алиас из кэша.
func (service *JWTService) GenerateAccessToken(user *model.User) (string, time.Duration, error) {
	ttl, err := time.ParseDuration(service.AccessTokenTTL)
	if err != nil {
		return "", 0, util.LogError("ошибка парсинга access_token_ttl", err)
	}

	claims := Claims{
		UserUUID: user.UUID,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "education-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.AccessSecret))
	if err != nil {
		return "", 0, util.LogError("ошибка подписи access токена", err)
	}

	return accessToken, ttl, nil
}

// GenerateRefreshToken подписывает долгоживущий refresh токен.
// hashToken входит в claims и возвращается отдельно для записи о выдаче.
func (service *JWTService) GenerateRefreshToken(user *model.User) (string, string, time.Time, error) {
	ttl, err := time.ParseDuration(service.RefreshTokenTTL)
	if err != nil {
		return "", "", time.Time{}, util.LogError("ошибка парсинга refresh_token_ttl", err)
	}

	now := time.Now()
	hashToken := NewHashToken(user.UUID, now)
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserUUID:  user.UUID,
		Email:     user.Email,
		HashToken: hashToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "education-server",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	refreshToken, err := jwtToken.SignedString([]byte(service.RefreshSecret))
	if err != nil {
		return "", "", time.Time{}, util.LogError("ошибка подписи refresh токена", err)
	}

	return refreshToken, hashToken, expiresAt, nil
}

// NewHashToken связывает refresh токен с записью о его выдаче.
// Уникальность достигается комбинацией пользователя и момента выдачи в наносекундах.
func NewHashToken(userUUID string, issuedAt time.Time) string {
	sum := sha256.Sum256([]byte(userUUID + ":" + strconv.FormatInt(issuedAt.UnixNano(), 10)))
	return hex.EncodeToString(sum[:])
}

func (service *JWTService) ValidateAccessToken(jwtTokenStr string) (*Claims, error) {
	claims, err := validateJWT(jwtTokenStr, []byte(service.AccessSecret))
	if err != nil {
		return nil, util.LogError("невалидный access токен", err)
	}
	return claims, nil
}

func (service *JWTService) ValidateRefreshToken(jwtTokenStr string) (*Claims, error) {
	claims, err := validateJWT(jwtTokenStr, []byte(service.RefreshSecret))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrExpiredRefresh
		}
		return nil, util.LogError("невалидный refresh токен", err)
	}
	return claims, nil
}

func validateJWT(jwtTokenStr string, secretKey []byte) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil {
		return nil, err
	}
	if !jwtToken.Valid {
		return nil, fmt.Errorf("невалидный токен")
	}

	return claims, nil
}
