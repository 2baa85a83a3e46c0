package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type placeOrder struct {
	PickupDate string `validate:"required,datetime=2006-01-02"`
	Quantity   int    `validate:"gt=0"`
	Role       string `validate:"oneof=user admin"`
}

func TestFormatValidationError(t *testing.T) {
	err := validator.New().Struct(placeOrder{PickupDate: "17/06/2024", Role: "owner"})

	assert.Equal(t,
		"Pickup date must be a date formatted as YYYY-MM-DD; Quantity must be greater than 0; Role must be one of: user admin",
		FormatValidationError(err))
}

func TestFormatValidationErrorMalformedBody(t *testing.T) {
	assert.Equal(t, "malformed request body", FormatValidationError(errors.New("unexpected EOF")))
}
