// Package httpx reúne los helpers HTTP compartidos por los handlers de cada
// dominio: escritura de JSON, mapeo de errores a status y decode+validación.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"animal-reservations/internal/platform/apperr"
	"animal-reservations/internal/platform/logger"

	"github.com/go-playground/validator/v10"
)

// ErrorBody es la forma estable {name, message} que ve el cliente.
type ErrorBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Mensajes con el nombre JSON del campo, no el de Go.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor mapea cada Kind a un status HTTP. El switch es exhaustivo sobre
// apperr.Kind; cualquier valor desconocido cae en 500.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuth:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindDuplicate:
		return http.StatusConflict
	case apperr.KindReference:
		return http.StatusUnprocessableEntity
	case apperr.KindStore:
		return http.StatusServiceUnavailable
	case apperr.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// WriteError responde {name, message}. Las fallas de store e internas se
// loguean con su causa en el logger del request; el cliente nunca la ve.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	ae, ok := apperr.As(err)
	if !ok {
		ae = apperr.ErrInternal.Wrap(err)
	}

	if ae.Kind == apperr.KindStore || ae.Kind == apperr.KindInternal {
		fields := map[string]any{
			"error":  ae.Name,
			"method": r.Method,
			"path":   r.URL.Path,
		}
		if ae.Err != nil {
			fields["cause"] = ae.Err.Error()
		}
		logger.FromContext(r.Context()).Error("request failed", fields)
	}

	WriteJSON(w, StatusFor(ae.Kind), ErrorBody{Name: ae.Name, Message: ae.Message})
}

// DecodeJSON decodifica el body en dst y corre las validaciones de tags
// `validate`. Los errores salen como ValidationError.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body is required")
		}
		return apperr.Validation("invalid json")
	}
	return Validate(dst)
}

func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation(err.Error())
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return apperr.Validation(strings.Join(parts, "; "))
}
