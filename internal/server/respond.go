package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
	"github.com/vipuljat/ProjectBasedLearning/pkg/store"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

// fail maps err to a status code and writes it. Internal errors are logged
// and their message is hidden from the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	msg := apperrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err,
			"request_id", RequestIDFrom(r.Context()))
		if code == string(apperrors.ErrCodeInternal) {
			msg = "internal server error"
		}
	}
	writeError(w, status, code, msg)
}

func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, string(apperrors.ErrCodeInvalidInput)
	}

	code := apperrors.GetCode(err)
	if code == "" && store.IsNotFound(err) {
		code = apperrors.ErrCodeNotFound
	}
	switch {
	case code == "":
		return http.StatusInternalServerError, string(apperrors.ErrCodeInternal)
	case apperrors.IsValidation(err):
		return http.StatusBadRequest, string(code)
	case code == apperrors.ErrCodeNotFound, code == apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound, string(code)
	case code == apperrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity, string(code)
	case code == apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, string(code)
	case code == apperrors.ErrCodeNetwork:
		return http.StatusBadGateway, string(code)
	}
	return http.StatusInternalServerError, string(code)
}
