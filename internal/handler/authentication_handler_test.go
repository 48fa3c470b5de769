package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"education-server/internal/handler"
	"education-server/internal/model"
	"education-server/internal/model/requestresponse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Login(ctx context.Context, email, password string) (*model.SessionTokens, error) {
	args := m.Called(ctx, email, password)
	if tokens, ok := args.Get(0).(*model.SessionTokens); ok {
		return tokens, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionService) Refresh(ctx context.Context, refreshToken, oldAlias string) (*model.SessionTokens, error) {
	args := m.Called(ctx, refreshToken, oldAlias)
	if tokens, ok := args.Get(0).(*model.SessionTokens); ok {
		return tokens, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionService) Logout(ctx context.Context, refreshToken, oldAlias string) error {
	args := m.Called(ctx, refreshToken, oldAlias)
	return args.Error(0)
}

func refreshCookie(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "refresh_token" {
			return cookie
		}
	}
	return nil
}

// 1. Успешный login: алиас в теле, refresh токен только в http-only cookie
func TestLoginHandler_Success(t *testing.T) {
	mockSvc := new(MockSessionService)
	h := &handler.AuthenticationHandler{SessionService: mockSvc}

	expiresAt := time.Now().Add(720 * time.Hour)
	mockSvc.On("Login", mock.Anything, "a@x.com", "secret123").Return(&model.SessionTokens{
		AccessAlias:      "alias-1",
		AccessTTL:        15 * time.Minute,
		RefreshToken:     "signed-refresh",
		RefreshExpiresAt: expiresAt,
	}, nil)

	request := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(`{"email":"a@x.com","password":"secret123"}`))
	recorder := httptest.NewRecorder()
	h.Login(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	body := recorder.Body.String()
	assert.NotContains(t, body, "signed-refresh")

	var resp requestresponse.SessionResponse
	assert.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "alias-1", resp.Response.AccessToken)
	assert.Equal(t, int64(900), resp.Response.ExpiresIn)

	cookie := refreshCookie(recorder)
	assert.NotNil(t, cookie)
	assert.Equal(t, "signed-refresh", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	mockSvc.AssertExpectations(t)
}

// 2. Неверные учётные данные — 401 без уточнения причины
func TestLoginHandler_InvalidCredentials(t *testing.T) {
	mockSvc := new(MockSessionService)
	h := &handler.AuthenticationHandler{SessionService: mockSvc}

	mockSvc.On("Login", mock.Anything, "a@x.com", "wrong1234").Return(nil, model.ErrInvalidCredentials)

	request := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(`{"email":"a@x.com","password":"wrong1234"}`))
	recorder := httptest.NewRecorder()
	h.Login(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Nil(t, refreshCookie(recorder))
}

// 3. Пустые поля — 400 до обращения к сервису
func TestLoginHandler_EmptyFields(t *testing.T) {
	mockSvc := new(MockSessionService)
	h := &handler.AuthenticationHandler{SessionService: mockSvc}

	request := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(`{"email":"","password":""}`))
	recorder := httptest.NewRecorder()
	h.Login(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	mockSvc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

// 4. Дешёвое обновление: cookie не перевыставляется
func TestRefreshHandler_CheapRenewal(t *testing.T) {
	mockSvc := new(MockSessionService)
	h := &handler.AuthenticationHandler{SessionService: mockSvc}

	mockSvc.On("Refresh", mock.Anything, "signed-refresh", "old-alias").Return(&model.SessionTokens{
		AccessAlias: "alias-2",
		AccessTTL:   15 * time.Minute,
	}, nil)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	request.AddCookie(&http.Cookie{Name: "refresh_token", Value: "signed-refresh"})
	request.Header.Set("Authorization", "Bearer old-alias")
	recorder := httptest.NewRecorder()
	h.Refresh(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Nil(t, refreshCookie(recorder))
	mockSvc.AssertExpectations(t)
}

// 5. Ротация: новый refresh токен уходит в cookie
func TestRefreshHandler_Rotation(t *testing.T) {
	mockSvc := new(MockSessionService)
	h := &handler.AuthenticationHandler{SessionService: mockSvc}

	expiresAt := time.Now().Add(720 * time.Hour)
	mockSvc.On("Refresh", mock.Anything, "signed-refresh", "").Return(&model.SessionTokens{
		AccessAlias:      "alias-2",
		AccessTTL:        15 * time.Minute,
		RefreshToken:     "new-refresh",
		RefreshExpiresAt: expiresAt,
	}, nil)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	request.AddCookie(&http.Cookie{Name: "refresh_token", Value: "signed-refresh"})
	recorder := httptest.NewRecorder()
	h.Refresh(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	cookie := refreshCookie(recorder)
	assert.NotNil(t, cookie)
	assert.Equal(t, "new-refresh", cookie.Value)
}

// 6. Просроченный refresh токен — 401
func TestRefreshHandler_Expired(t *testing.T) {
	mockSvc := new(MockSessionService)
	h := &handler.AuthenticationHandler{SessionService: mockSvc}

	mockSvc.On("Refresh", mock.Anything, "stale-refresh", "").Return(nil, model.ErrExpiredRefresh)

	request := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	request.AddCookie(&http.Cookie{Name: "refresh_token", Value: "stale-refresh"})
	recorder := httptest.NewRecorder()
	h.Refresh(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

// 7. Logout очищает cookie
func TestLogoutHandler_Success(t *testing.T) {
	mockSvc := new(MockSessionService)
	h := &handler.AuthenticationHandler{SessionService: mockSvc}

	mockSvc.On("Logout", mock.Anything, "signed-refresh", "alias-1").Return(nil)

	request := httptest.NewRequest(http.MethodDelete, "/api/auth/logout", nil)
	request.AddCookie(&http.Cookie{Name: "refresh_token", Value: "signed-refresh"})
	request.Header.Set("Authorization", "Bearer alias-1")
	recorder := httptest.NewRecorder()
	h.Logout(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)

	cookie := refreshCookie(recorder)
	assert.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
	mockSvc.AssertExpectations(t)
}

// 8. Повторный logout тем же токеном — 401
func TestLogoutHandler_AlreadyRevoked(t *testing.T) {
	mockSvc := new(MockSessionService)
	h := &handler.AuthenticationHandler{SessionService: mockSvc}

	mockSvc.On("Logout", mock.Anything, "signed-refresh", "").Return(model.ErrUnauthorized)

	request := httptest.NewRequest(http.MethodDelete, "/api/auth/logout", nil)
	request.AddCookie(&http.Cookie{Name: "refresh_token", Value: "signed-refresh"})
	recorder := httptest.NewRecorder()
	h.Logout(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
