package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"education-server/internal/model/requestresponse"
	"education-server/internal/ports"
	"education-server/internal/service"
	"education-server/internal/util"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService}
}

// RegisterUser godoc
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись с привязкой к роли. Операция закрыта токеном администратора.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 200 {object} requestresponse.RegisterResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 403 {object} requestresponse.ErrorResponse "Неверный токен администратора"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/register [post]
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.Register(ctx, req.Token, req.Email, req.Password, req.RoleUUID)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "токен администратора"):
			util.HandleError(w, "доступ запрещён", http.StatusForbidden)
		case strings.Contains(err.Error(), "уже существует"),
			strings.Contains(err.Error(), "email"),
			strings.Contains(err.Error(), "пароль"):
			util.HandleError(w, err.Error(), http.StatusBadRequest)
		default:
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	resp := requestresponse.RegisterResponse{}
	resp.Response.UserUUID = user.UUID
	resp.Response.Email = user.Email

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// UpdatePassword godoc
// @Summary Смена пароля пользователя
// @Tags Users
// @Accept json
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param body body requestresponse.UpdatePasswordRequest true "Тело запроса"
// @Param Authorization header string true "Bearer алиас access токена"
// @Success 200
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid}/password [put]
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	userUUID := chi.URLParam(r, "uuid")
	if userUUID == "" {
		util.HandleError(w, "uuid не указан", http.StatusBadRequest)
		return
	}

	var req requestresponse.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	if err := h.UserService.UpdatePassword(ctx, userUUID, req.NewPassword); err != nil {
		log.Println(err)
		if strings.Contains(err.Error(), "пароль") {
			util.HandleError(w, err.Error(), http.StatusBadRequest)
		} else {
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
