package content

import "fmt"

// MissingFieldError reports a required metadata key that is absent or empty.
type MissingFieldError struct {
	File  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required metadata field %q", e.File, e.Field)
}

// DateError reports a date field that is not in YYYY-MM-DD form.
type DateError struct {
	File  string
	Value string
	Err   error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s: date %q is not YYYY-MM-DD: %v", e.File, e.Value, e.Err)
}

func (e *DateError) Unwrap() error {
	return e.Err
}
