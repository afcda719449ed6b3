package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/soulbound/internal/errors"
)

func TestTemplate_IsOwnedBy(t *testing.T) {
	template := &Template{ID: 1, Issuer: "0x00000000000000000000000000000000000000b2"}

	assert.True(t, template.IsOwnedBy("0x00000000000000000000000000000000000000b2"))
	assert.False(t, template.IsOwnedBy("0x00000000000000000000000000000000000000b3"))
	assert.False(t, template.IsOwnedBy(""))
}

func TestTemplateErrors(t *testing.T) {
	assert.ErrorIs(t, ErrTemplateNotFound, errors.ErrNotFound)
	assert.ErrorIs(t, ErrNotTemplateOwner, errors.ErrForbidden)
	assert.ErrorIs(t, ErrTemplateInactive, errors.ErrInvalidState)
	assert.ErrorIs(t, ErrTemplateAlreadyActive, errors.ErrInvalidState)
	assert.ErrorIs(t, ErrTemplateNameRequired, errors.ErrInvalidInput)
	assert.ErrorIs(t, ErrTemplateDescriptionRequired, errors.ErrInvalidInput)
}
