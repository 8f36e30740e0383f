package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := New(KindNotFound, "Blog not found")
	wrapped := fmt.Errorf("edit: %w", base)

	assert.Equal(t, KindNotFound, KindOf(base))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(nil, KindUnknown))
}

func TestWrap_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindUnknown, "Failed to delete account", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Failed to delete account")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestValidation_CarriesFields(t *testing.T) {
	err := Validation(map[string]string{"slug": "Slug must be lowercase and hyphen-separated"})

	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "Slug must be lowercase and hyphen-separated", err.Fields["slug"])
	assert.Equal(t, "validation_failed", err.Kind.String())
}
