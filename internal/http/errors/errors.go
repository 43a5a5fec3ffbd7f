package errors

import (
	"encoding/json"
	"net/http"
)

// errorResponse estructura interna para la serialización JSON.
// Controla exactamente qué campos se envían al cliente.
type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Detail  string            `json:"detail,omitempty"`
	Fields  map[string]string `json:"fieldErrors,omitempty"`
}

// WriteError escribe una respuesta HTTP basada en el error proporcionado.
// Maneja automáticamente errores de tipo *AppError y errores genéricos.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	resp := errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteFieldErrors escribe un error de validación con mensajes por campo,
// espejo del shape fieldErrors que renderiza el formulario de login.
func WriteFieldErrors(w http.ResponseWriter, fields map[string]string) {
	resp := errorResponse{
		Code:    ErrValidation.Code,
		Message: ErrValidation.Message,
		Fields:  fields,
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(ErrValidation.HTTPStatus)
	_ = json.NewEncoder(w).Encode(resp)
}
