package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxBioLen caps the profile bio. Enforced client-side before any network
// call so a too-long bio never leaves the process.
const MaxBioLen = 500

var (
	ErrTitleRequired = errors.New("title is required")
	ErrBioTooLong    = errors.New("bio is too long")
)

func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	return nil
}

func ValidateBio(bio string) error {
	if n := utf8.RuneCountInString(bio); n > MaxBioLen {
		return fmt.Errorf("%w: %d characters (limit %d)", ErrBioTooLong, n, MaxBioLen)
	}
	return nil
}
