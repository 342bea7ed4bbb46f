package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError(t *testing.T) {
	err := NotFound("Beer", 42)

	assert.Equal(t, "Beer not found with ID: 42", err.Error())

	var nf *NotFoundError
	wrapped := fmt.Errorf("loading order line: %w", err)
	assert.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, "Beer", nf.Entity)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Detail: "Validation failed",
		Fields: map[string]string{
			"upc":      "upc is required",
			"beerName": "beerName is required",
		},
	}

	// fields are listed in a stable order
	assert.Equal(t, "Validation failed (beerName: beerName is required; upc: upc is required)", err.Error())
	assert.Equal(t, "Validation failed (page: must not be negative)", Validation("page", "must not be negative").Error())
}

func TestConflictError(t *testing.T) {
	cause := errors.New("version conflict")
	err := Conflict("Beer was modified concurrently", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Beer was modified concurrently: version conflict", err.Error())
	assert.Equal(t, "plain", Conflict("plain", nil).Error())
}
