package validator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidMerchant = errors.New("invalid merchant")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidName     = errors.New("invalid name")
)

const (
	maxMerchantLength = 120
	maxNameLength     = 120
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

func ValidateMerchant(merchant string) error {
	trimmed := strings.TrimSpace(merchant)
	if trimmed == "" || len(trimmed) > maxMerchantLength {
		return ErrInvalidMerchant
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || len(trimmed) > maxNameLength {
		return ErrInvalidName
	}
	return nil
}
