package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"education-server/internal/model/requestresponse"
	"education-server/internal/ports"
	"education-server/internal/security"
	"education-server/internal/service"
	"education-server/internal/util"
)

const refreshCookieName = "refresh_token"

type AuthenticationHandler struct {
	ports.SessionService
}

func NewAuthenticationHandler(sessionService *service.SessionService) *AuthenticationHandler {
	return &AuthenticationHandler{sessionService}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Выдаёт алиас access токена по email и паролю. Refresh токен уходит в http-only cookie.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.SessionResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный логин или пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		util.HandleError(w, "email и password обязательны", http.StatusBadRequest)
		return
	}

	tokens, err := h.SessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Println(err)
		util.HandleServiceError(w, err)
		return
	}

	setRefreshCookie(w, tokens.RefreshToken, tokens.RefreshExpiresAt)
	writeSessionResponse(w, tokens.AccessAlias, tokens.AccessTTL)
}

// Refresh godoc
// @Summary Обмен refresh токена
// @Description Выдаёт новый алиас access токена. Вблизи истечения refresh токен ротируется, старый отзывается.
// @Tags Authentication
// @Produce json
// @Param Authorization header string false "Bearer алиас прежнего access токена"
// @Success 200 {object} requestresponse.SessionResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Отсутствующий, просроченный или уже использованный refresh токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	tokens, err := h.SessionService.Refresh(ctx, refreshTokenFromCookie(r), bearerAlias(r))
	if err != nil {
		log.Println(err)
		util.HandleServiceError(w, err)
		return
	}

	if tokens.RefreshToken != "" {
		setRefreshCookie(w, tokens.RefreshToken, tokens.RefreshExpiresAt)
	}
	writeSessionResponse(w, tokens.AccessAlias, tokens.AccessTTL)
}

// Logout godoc
// @Summary Завершение сессии
// @Description Отзывает запись о выдаче refresh токена, инвалидирует алиас и очищает cookie.
// @Tags Authentication
// @Produce json
// @Param Authorization header string false "Bearer алиас access токена"
// @Success 200 {object} requestresponse.LogoutResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный или уже отозванный refresh токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/logout [delete]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	if err := h.SessionService.Logout(ctx, refreshTokenFromCookie(r), bearerAlias(r)); err != nil {
		log.Println(err)
		util.HandleServiceError(w, err)
		return
	}

	clearRefreshCookie(w)

	resp := requestresponse.LogoutResponse{}
	resp.Response.LoggedOut = true

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

// GetCurrentUser godoc
// @Summary Текущий пользователь
// @Description Возвращает идентичность из access токена и классификацию роли
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer алиас access токена"
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthenticationHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.UserUUID = claims.UserUUID
	resp.Response.Email = claims.Email
	if access, err := security.GetAccessFromContext(r.Context()); err == nil {
		resp.Response.RoleType = access.RoleType
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// GetCurrentUserHead godoc
// @Summary Текущий пользователь
// @Tags Authentication
// @Param Authorization header string true "Bearer алиас access токена"
// @Success 200
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/auth/me [head]
func (h *AuthenticationHandler) GetCurrentUserHead(w http.ResponseWriter, r *http.Request) {
	h.GetCurrentUser(w, r)
}

func writeSessionResponse(w http.ResponseWriter, alias string, ttl time.Duration) {
	resp := requestresponse.SessionResponse{}
	resp.Response.AccessToken = alias
	resp.Response.ExpiresIn = int64(ttl.Seconds())

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}

func refreshTokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// bearerAlias извлекает алиас из заголовка, если клиент его предъявил
func bearerAlias(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func setRefreshCookie(w http.ResponseWriter, refreshToken string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/api/auth",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
