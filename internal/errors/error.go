// Package errors provides the error kinds reported by the catalog stores.
package errors

import "errors"

// ErrNotFound is returned when the referenced id does not exist in the collection.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateKey is returned when a create or update would make two records share a natural key.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrInsufficientStock is returned when a stock decrement would drive stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidState is returned when a value reaching the store violates an invariant
// the validation layer should have enforced.
var ErrInvalidState = errors.New("invalid state")
