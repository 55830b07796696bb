package httpapi

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse — единый формат ошибок API.
type ErrorResponse struct {
	Error   string             `json:"error"`
	Details *ValidationDetails `json:"details,omitempty"`
}

// ValidationDetails — машинно-читаемая детализация ошибок валидации:
// сообщения по полям плюс ошибки формы целиком.
type ValidationDetails struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

func newValidationDetails() *ValidationDetails {
	return &ValidationDetails{
		FormErrors:  []string{},
		FieldErrors: make(map[string][]string),
	}
}

func (d *ValidationDetails) addField(field, message string) {
	d.FieldErrors[field] = append(d.FieldErrors[field], message)
}

func (d *ValidationDetails) addForm(message string) {
	d.FormErrors = append(d.FormErrors, message)
}

func (d *ValidationDetails) empty() bool {
	return len(d.FormErrors) == 0 && len(d.FieldErrors) == 0
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func writeValidationError(w http.ResponseWriter, details *ValidationDetails) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Details: details,
	})
}
