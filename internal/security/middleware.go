package security

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"education-server/internal/model"
	"education-server/internal/util"
)

type contextKey string

const (
	UserContextKey   contextKey = "user"
	AliasContextKey  contextKey = "alias"
	AccessContextKey contextKey = "access"
)

// AliasResolver : то, что шлюзу нужно от кэша алиасов
type AliasResolver interface {
	ResolveAlias(ctx context.Context, alias string) (string, error)
}

// AccessTokenValidator : то, что шлюзу нужно от кодека токенов
type AccessTokenValidator interface {
	ValidateAccessToken(tokenStr string) (*Claims, error)
}

// Authorizer : проверка прав по загруженному дереву роли
type Authorizer interface {
	Authorize(ctx context.Context, userUUID string, required []string) (*model.AccessContext, error)
}

// SessionMiddleware : шлюз аутентификации.
// Bearer-алиас -> кэш -> подписанный access токен -> проверка подписи -> claims в контексте.
func SessionMiddleware(cache AliasResolver, validator AccessTokenValidator) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(cache, validator, next))
	}
}

func handleAuthentication(cache AliasResolver, validator AccessTokenValidator, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorizationHeader := request.Header.Get("Authorization")
		if !strings.HasPrefix(authorizationHeader, "Bearer ") {
			util.HandleError(writer, "не авторизован", http.StatusUnauthorized)
			return
		}

		alias := strings.TrimPrefix(authorizationHeader, "Bearer ")

		signedToken, err := cache.ResolveAlias(request.Context(), alias)
		if err != nil {
			// отказ кэша не повод пропускать запрос дальше
			log.Printf("ошибка кэша при разрешении алиаса: %v", err)
			util.HandleError(writer, "не авторизован", http.StatusUnauthorized)
			return
		}
		if signedToken == "" {
			util.HandleError(writer, "не авторизован", http.StatusUnauthorized)
			return
		}

		claims, err := validator.ValidateAccessToken(signedToken)
		if err != nil {
			log.Printf("невалидный токен за алиасом %s: %v", alias, err)
			util.HandleError(writer, "не авторизован", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(request.Context(), UserContextKey, claims)
		ctx = context.WithValue(ctx, AliasContextKey, alias)
		next.ServeHTTP(writer, request.WithContext(ctx))
	}
}

// RequirePermissions : шлюз авторизации для группы маршрутов.
// Доступ открывает ЛЮБОЙ из перечисленных путей вида "домен.действие".
func RequirePermissions(authorizer Authorizer, permissions ...string) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims, err := GetClaimsFromContext(request.Context())
			if err != nil {
				util.HandleError(writer, "не авторизован", http.StatusUnauthorized)
				return
			}

			access, err := authorizer.Authorize(request.Context(), claims.UserUUID, permissions)
			if err != nil {
				switch {
				case errors.Is(err, model.ErrForbidden):
					util.HandleError(writer, "доступ запрещён", http.StatusForbidden)
				case errors.Is(err, model.ErrUnauthorized):
					util.HandleError(writer, "не авторизован", http.StatusUnauthorized)
				default:
					log.Printf("ошибка проверки прав пользователя %s: %v", claims.UserUUID, err)
					util.HandleError(writer, "внутренняя ошибка сервера", http.StatusInternalServerError)
				}
				return
			}

			ctx := context.WithValue(request.Context(), AccessContextKey, access)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}

func GetAliasFromContext(ctx context.Context) string {
	alias, _ := ctx.Value(AliasContextKey).(string)
	return alias
}

func GetAccessFromContext(ctx context.Context) (*model.AccessContext, error) {
	access, ok := ctx.Value(AccessContextKey).(*model.AccessContext)
	if !ok || access == nil {
		return nil, fmt.Errorf("контекст доступа не найден")
	}
	return access, nil
}

// RequestTimeout ограничивает время обработки запроса:
// обращения к БД и кэшу наследуют дедлайн через контекст.
func RequestTimeout(timeout time.Duration) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx, cancel := context.WithTimeout(request.Context(), timeout)
			defer cancel()
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
