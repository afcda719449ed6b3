package domain

import (
	"github.com/allisson/soulbound/internal/errors"
)

// Template error definitions.
var (
	ErrTemplateNotFound            = errors.Wrap(errors.ErrNotFound, "template not found")
	ErrNotTemplateOwner            = errors.Wrap(errors.ErrForbidden, "caller does not own the template")
	ErrTemplateInactive            = errors.Wrap(errors.ErrInvalidState, "template is not active")
	ErrTemplateAlreadyActive       = errors.Wrap(errors.ErrInvalidState, "template is already active")
	ErrTemplateNameRequired        = errors.Wrap(errors.ErrInvalidInput, "template name is required")
	ErrTemplateDescriptionRequired = errors.Wrap(errors.ErrInvalidInput, "template description is required")
)
