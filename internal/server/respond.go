package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "task-management/internal/errors"
	"task-management/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// respondError maps errors onto HTTP statuses. Validation failures and
// invalid input are 400; authentication failures 401; hidden or missing
// resources 404; uniqueness conflicts 409; a dangling owner 422;
// everything else is a 500 with no internal detail leaked.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := apperrors.GetUserMessage(err)

	if appErr, ok := apperrors.AsAppError(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidInput:
			status = http.StatusBadRequest
		case apperrors.ErrorTypeUnauthenticated, apperrors.ErrorTypeInvalidToken:
			status = http.StatusUnauthorized
		case apperrors.ErrorTypeNotFound:
			status = http.StatusNotFound
		case apperrors.ErrorTypeConflict:
			status = http.StatusConflict
		case apperrors.ErrorTypeOwnerNotFound:
			status = http.StatusUnprocessableEntity
		}

		// Validator failures arrive wrapped as the error's cause; surface
		// the per-field messages instead of the generic wrapper text.
		var ve *validation.ValidationError
		if errors.As(appErr.Cause, &ve) {
			message = ve.GetUserFriendlyMessage()
		}
	}

	if apperrors.ShouldLogError(err) {
		log.Printf("request failed: %v", err)
	}

	respondJSON(w, status, errorResponse{
		Error: message,
		Code:  apperrors.GetErrorCode(err),
	})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewInvalidInputError("body", nil, "malformed JSON")
	}
	return nil
}
