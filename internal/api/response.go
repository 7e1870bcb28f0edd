package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "careerai/internal/errors"
)

const (
	statusSuccess = "success"
	statusError   = "error"

	maxJSONBody = 1 << 20
)

type envelope struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	Response  string `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
	Details   string `json:"details,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, envelope{Status: statusError, Message: message, Details: details})
}

// writeFailure maps an upstream completion status onto the matching client
// facing response. Anything else becomes a 500 with the fallback message.
func writeFailure(w http.ResponseWriter, err error, fallback string) {
	if apperrors.Is(err, apperrors.Completion) {
		switch apperrors.StatusOf(err) {
		case http.StatusTooManyRequests:
			writeJSON(w, http.StatusTooManyRequests, envelope{
				Status:  statusError,
				Message: "Rate limit exceeded. Please wait a moment and try again, or select a different AI model.",
				Error:   "OpenRouter API rate limit reached",
				Details: err.Error(),
			})
			return
		case http.StatusNotFound:
			writeJSON(w, http.StatusNotFound, envelope{
				Status:  statusError,
				Message: "The selected AI model is not available. Please try a different model.",
				Error:   "Model not found",
				Details: err.Error(),
			})
			return
		case http.StatusBadRequest:
			writeJSON(w, http.StatusBadRequest, envelope{
				Status:  statusError,
				Message: "Invalid request to AI service. Please try again.",
				Error:   "Bad request",
				Details: err.Error(),
			})
			return
		}
	}

	writeJSON(w, http.StatusInternalServerError, envelope{
		Status:  statusError,
		Message: fallback,
		Error:   apperrors.KindOf(err).String(),
		Details: err.Error(),
	})
}

// decode reads a JSON body into dst and validates it. On failure it has
// already written a 400.
func (h *APIHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err), "")
		return false
	}
	return true
}

// newValidator reports fields by their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
