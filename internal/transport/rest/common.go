// Package rest provides HTTP handlers for user and product operations.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	perrors "github.com/abgdnv/catalog/internal/errors"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// newValidator creates a validator reporting fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeValid decodes the request body into dst and validates it.
// On failure the response is written and false is returned.
func decodeValid(w http.ResponseWriter, r *http.Request, logger *slog.Logger, validate *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				// fieldErr.Tag() returns "required", "max", etc.
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			logger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, logger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return false
		}
		logger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// resource names an entity in client facing error messages.
type resource struct {
	name string
	key  string
}

var (
	userResource    = resource{name: "User", key: "email"}
	productResource = resource{name: "Product", key: "SKU"}
)

// respondError maps a service error to a response. id may be uuid.Nil when the
// operation does not address a single record.
func (res resource) respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, id uuid.UUID, action string) {
	ctx := r.Context()
	switch {
	case errors.Is(err, perrors.ErrNotFound):
		logger.WarnContext(ctx, res.name+" not found", "ID", id, "action", action)
		web.RespondError(w, logger, http.StatusNotFound, fmt.Sprintf("%s with ID %s not found", res.name, id))
	case errors.Is(err, perrors.ErrDuplicateKey):
		logger.WarnContext(ctx, "Duplicate "+res.key, "action", action, "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s with this %s already exists", res.name, res.key))
	case errors.Is(err, perrors.ErrInsufficientStock):
		logger.WarnContext(ctx, "Insufficient stock", "ID", id, "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, "Insufficient stock")
	case errors.Is(err, perrors.ErrInvalidState):
		logger.WarnContext(ctx, "Rejected invalid "+strings.ToLower(res.name)+" data", "action", action, "error", err)
		web.RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s data", strings.ToLower(res.name)))
	case errors.Is(err, context.Canceled):
		logger.WarnContext(ctx, "Request canceled", "action", action)
		web.RespondError(w, logger, http.StatusServiceUnavailable, "Request canceled")
	default:
		logger.ErrorContext(ctx, "Failed to "+action, "ID", id, "error", err)
		web.RespondError(w, logger, http.StatusInternalServerError, "Failed to "+action)
	}
}
