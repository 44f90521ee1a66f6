package validation

import (
	"fmt"

	"github.com/Ah-ugo/amber-hotels-menu/internal/models"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	// ErrEmptyCart is returned by the submission boundary before any
	// persistence call is attempted.
	ErrEmptyCart = ValidationError{
		Field:   "items",
		Message: "cart is empty, add items before ordering",
	}

	ErrInvalidTableNumber = ValidationError{
		Field:   "table_number",
		Message: "table number must be a positive integer",
	}
)

func ValidateTableNumber(n int) error {
	if n <= 0 {
		return ErrInvalidTableNumber
	}
	return nil
}

func ValidateQuantity(index, quantity int) error {
	if quantity <= 0 {
		return ValidationError{
			Field:   fmt.Sprintf("items[%d].quantity", index),
			Message: "quantity must be greater than 0",
		}
	}
	return nil
}

func ValidateStatus(status models.OrderStatus) error {
	if !status.Valid() {
		return ValidationError{
			Field:   "status",
			Message: "status must be one of pending, preparing, served",
		}
	}
	return nil
}

func ValidateMenuItem(name string, price float64, category string) error {
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if price < 0 {
		return ValidationError{Field: "price", Message: "price must not be negative"}
	}
	if category == "" {
		return ValidationError{Field: "category", Message: "category is required"}
	}
	return nil
}
