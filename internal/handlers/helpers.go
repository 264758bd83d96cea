package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rideandbuy/paylink/internal/api"
	"github.com/rideandbuy/paylink/internal/service"
)

const (
	maxRequestBodyBytes = 64 << 10
	maxWebhookBodyBytes = 1 << 20
)

func mapServiceErrorToCode(code string) api.ErrorCode {
	switch code {
	case service.ErrCodeValidation:
		return api.ErrorCodeValidationError
	case service.ErrCodeDuplicateReference:
		return api.ErrorCodeDuplicateReference
	case service.ErrCodeMissingReference:
		return api.ErrorCodeMissingReference
	case service.ErrCodeUnknownTransaction:
		return api.ErrorCodeUnknownTransaction
	case service.ErrCodeNotFound:
		return api.ErrorCodeNotFound
	case service.ErrCodeLinkAlreadySet:
		return api.ErrorCodeLinkAlreadySet
	case service.ErrCodeProviderError:
		return api.ErrorCodeProviderError
	default:
		return api.ErrorCodeInternalError
	}
}

func statusForServiceError(code string) int {
	switch code {
	case service.ErrCodeValidation, service.ErrCodeMissingReference:
		return http.StatusBadRequest
	case service.ErrCodeUnknownTransaction, service.ErrCodeNotFound:
		return http.StatusNotFound
	case service.ErrCodeDuplicateReference, service.ErrCodeLinkAlreadySet:
		return http.StatusConflict
	case service.ErrCodeProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

// writeServiceError maps err to its HTTP status and error body. Internal
// details are logged, never returned.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	svcErr := extractServiceError(err)
	if svcErr == nil {
		h.logger.Error("unexpected error", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, api.ErrorCodeInternalError, "internal error")
		return
	}

	status := statusForServiceError(svcErr.Code)
	message := svcErr.Message
	switch status {
	case http.StatusInternalServerError:
		h.logger.Error("request failed", "error", err, "path", r.URL.Path)
		message = "internal error"
	case http.StatusBadGateway:
		h.logger.Error("payment provider error", "error", err, "path", r.URL.Path)
	}

	writeError(w, status, mapServiceErrorToCode(svcErr.Code), message)
}

func writeError(w http.ResponseWriter, status int, code api.ErrorCode, message string) {
	writeJSON(w, status, api.ErrorResponse{
		Ok:      false,
		Error:   code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Nothing useful to do if write fails
	json.NewEncoder(w).Encode(body)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
