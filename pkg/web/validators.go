package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
)

// ParamValidator is a function type that validates a parameter.
type ParamValidator[T any] func(valueToTest T) bool

// oneOf returns a ParamValidator that checks if the argument is one of the values captured in the closure.
func oneOf[T comparable](allowed []T) ParamValidator[T] {
	return func(argValue T) bool {
		return slices.Contains(allowed, argValue)
	}
}

// ParseOptionalEnum reads the optional query parameter key and checks it against allowed.
// An absent parameter yields the zero value and true. An unknown value is answered with 400 and
// yields false.
func ParseOptionalEnum[T ~string](r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, allowed []T) (T, bool) {
	return parseValidate(r, w, logger, key, oneOf(allowed))
}

func parseValidate[T ~string](r *http.Request, w http.ResponseWriter, logger *slog.Logger, key string, pValidator ParamValidator[T]) (T, bool) {
	value := T(r.URL.Query().Get(key))
	if value == "" {
		return value, true
	}
	if !pValidator(value) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %s", key, value))
		return "", false
	}
	return value, true
}
