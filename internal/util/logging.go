package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"education-server/internal/model"
)

func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

// WrapUnavailable логирует инфраструктурную ошибку и возвращает ошибку,
// различимую верхними слоями через errors.Is(err, model.ErrUnavailable).
func WrapUnavailable(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%w: %s", model.ErrUnavailable, message)
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	}{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	json.NewEncoder(w).Encode(errorResponse)
}

// HandleServiceError переводит ошибки сервисного слоя в HTTP-статусы
func HandleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		HandleError(w, model.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, model.ErrExpiredRefresh), errors.Is(err, model.ErrUnauthorized):
		HandleError(w, "не авторизован", http.StatusUnauthorized)
	case errors.Is(err, model.ErrForbidden):
		HandleError(w, "доступ запрещён", http.StatusForbidden)
	case errors.Is(err, model.ErrUnavailable):
		HandleError(w, "сервис временно недоступен", http.StatusServiceUnavailable)
	default:
		HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
