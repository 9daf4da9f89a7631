package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	nf := NotFoundf("booking with id %d not found", 7)
	assert.EqualError(t, nf, "booking with id 7 not found")
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.NotErrorIs(t, nf, ErrValidation)

	wrapped := fmt.Errorf("get booking: %w", Validationf("unknown state: %s", "NOPE"))
	assert.ErrorIs(t, wrapped, ErrValidation)

	var de *Error
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "unknown state: NOPE", de.Message)

	assert.ErrorIs(t, Conflictf("email taken"), ErrConflict)
}
