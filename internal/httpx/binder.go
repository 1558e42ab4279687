package httpx

import (
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"librarymanager/internal/apperr"
)

const (
	reasonMalformedBody = "malformed request body"
	reasonBodyTooLarge  = "request body too large"
)

// Binder decodes a JSON body into a request struct, applies its mod tags and
// validates it.
type Binder struct {
	conform  *mold.Transformer
	validate *validator.Validate
}

func NewBinder() *Binder {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Binder{conform: modifiers.New(), validate: validate}
}

// Bind fills dst from r. An empty body decodes as an empty object.
func (b *Binder) Bind(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.New(apperr.KindValidation, reasonBodyTooLarge)
		}
		return apperr.Wrap(apperr.KindValidation, reasonMalformedBody, err)
	}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, dst); err != nil {
			return apperr.Wrap(apperr.KindValidation, reasonMalformedBody, err)
		}
	}

	if err := b.conform.Struct(r.Context(), dst); err != nil {
		return errors.Wrap(err, "apply request modifiers")
	}
	if err := b.validate.Struct(dst); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			return apperr.New(apperr.KindValidation, formatValidationError(errs[0]))
		}
		return errors.Wrap(err, "validate request")
	}
	return nil
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	switch err.Tag() {
	case "required", "required_without":
		return "required field missing: " + field
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, err.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s must be between %s", field, err.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
