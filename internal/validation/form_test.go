package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateForm(t *testing.T) {
	date := time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		title       string
		description string
		date        time.Time
		want        []error
	}{
		{"valid", "Finish chapter 3", "Algebra", date, nil},
		{"empty title", "", "Algebra", date, []error{ErrTitleRequired}},
		{"blank description", "Finish", "   ", date, []error{ErrDescriptionRequired}},
		{"missing date", "Finish", "Algebra", time.Time{}, []error{ErrTargetDateRequired}},
		{"everything missing", "", "", time.Time{}, []error{ErrTitleRequired, ErrDescriptionRequired, ErrTargetDateRequired}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateForm(tc.title, tc.description, tc.date)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			for _, want := range tc.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestValidateTitle_TooLong(t *testing.T) {
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, ValidateTitle(string(long)), ErrTitleTooLong)
}
