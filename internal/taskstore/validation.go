package taskstore

import (
	"strings"

	"taskpad/internal/service"
)

// ValidateDescription trims desc and rejects it if nothing is left.
func ValidateDescription(desc string) (string, error) {
	trimmed := strings.TrimSpace(desc)
	if trimmed == "" {
		return "", ErrEmptyDescription
	}
	return trimmed, nil
}

// validateCategory canonicalizes c. A nil category stays nil.
func validateCategory(c *service.Category) (*service.Category, error) {
	if c == nil {
		return nil, nil
	}
	canon, err := service.ParseCategory(string(*c))
	if err != nil {
		return nil, err
	}
	return &canon, nil
}
