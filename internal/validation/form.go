package validation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrTargetDateRequired  = errors.New("target date is required")
	ErrTitleTooLong        = errors.New("title is too long (max 200 characters)")
)

// ValidateTitle validates a goal or activity title
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return ErrTitleRequired
	}

	if len(trimmed) > 200 {
		return ErrTitleTooLong
	}

	return nil
}

func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrDescriptionRequired
	}
	return nil
}

func ValidateTargetDate(date time.Time) error {
	if date.IsZero() {
		return ErrTargetDateRequired
	}
	return nil
}

// ValidateForm checks the fields every create/edit form requires and joins all failures.
func ValidateForm(title, description string, targetDate time.Time) error {
	return errors.Join(
		ValidateTitle(title),
		ValidateDescription(description),
		ValidateTargetDate(targetDate),
	)
}
