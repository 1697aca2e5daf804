package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Статусы ошибок в теле ответа
const (
	StatusInvalidArgument = "invalid-argument"
	StatusNotFound        = "not-found"
	StatusInternal        = "internal"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	maxBodyBytes     = 1 << 20
)

// ErrorResponse модель ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RespondJSON отправляет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondNoContent отправляет пустой ответ 204
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError отправляет ошибку с произвольным HTTP статусом
func RespondError(w http.ResponseWriter, code int, status, message string) {
	RespondJSON(w, code, ErrorResponse{Code: code, Status: status, Message: message})
}

// RespondBadRequest отправляет 400 invalid-argument
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, StatusInvalidArgument, message)
}

// RespondNotFound отправляет 404 not-found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, StatusNotFound, message)
}

// RespondInternalError отправляет 500 internal без подробностей ошибки
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, StatusInternal, msgInternalError)
}

// DecodeJSON разбирает тело запроса
// Неизвестные поля игнорируются: писатели присылают записи целиком
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
