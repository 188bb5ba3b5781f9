package http

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/aussiebroadwan/hiddengems/internal/directory/service"
	"github.com/aussiebroadwan/hiddengems/pkg/directorysdk"
	"github.com/aussiebroadwan/hiddengems/pkg/httpx"
	"github.com/aussiebroadwan/hiddengems/pkg/slogx"
	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 64 << 10

var validate = newValidator()

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate reads a JSON body into dst and checks its validate
// tags. On failure the 400 response has already been written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst, maxBodyBytes); err != nil {
		directorysdk.ErrInvalidRequest.
			WithDescription("request body must be a JSON object").
			WriteError(w)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			directorysdk.ErrInvalidRequest.WriteError(w)
			return false
		}

		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		apiErr := directorysdk.ErrInvalidRequest.WithDescription("validation failed")
		apiErr.Fields = fields
		apiErr.WriteError(w)
		return false
	}

	return true
}

// writeServiceError maps a service error to its response. Unexpected
// errors are logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		conflict *service.ConflictError
		authErr  *service.AuthError
	)

	switch {
	case errors.As(err, &conflict):
		directorysdk.NewAPIError(http.StatusConflict, directorysdk.ErrorCodeConflict, conflict.Reason).WriteError(w)
	case errors.As(err, &authErr):
		directorysdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrBusinessNotFound):
		directorysdk.ErrBusinessNotFound.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		directorysdk.NewAPIError(http.StatusNotFound, directorysdk.ErrorCodeNotFound, "user not found").WriteError(w)
	case errors.Is(err, service.ErrInvalidRegistration):
		directorysdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		directorysdk.ErrServerError.WriteError(w)
	}
}
