package forms

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"vincit.fi/collector/backend/remote"
	"vincit.fi/collector/backend/upload"
	"vincit.fi/collector/common/util"
)

var ErrValidation = errors.New("validation failed")

// ValidationError is a form field that failed a check made before any
// request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

var validate = validator.New()

// messages maps "Field.tag" to the message shown for it.
type messages map[string]string

// check validates the form and returns the message of the first failing
// field.
func check(form any, custom messages) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err
	}
	first := fieldErrors[0]
	message, ok := custom[first.StructField()+"."+first.Tag()]
	if !ok {
		message = friendlyMessage(first)
	}
	return &ValidationError{Field: first.StructField(), Message: message}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", e.Field(), e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", e.Field())
	case "numeric":
		return fmt.Sprintf("%s must be a number", e.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

// submission guards a form against double submits and keeps the message
// shown in the form.
type submission struct {
	inFlight *util.InFlight[string]
	message  string
}

const submitKey = "submit"

func newSubmission() submission {
	return submission{inFlight: util.NewInFlight[string]()}
}

func (s *submission) begin() error {
	if !s.inFlight.TryBegin(submitKey) {
		return util.ErrInFlight
	}
	s.message = ""
	return nil
}

func (s *submission) end() {
	s.inFlight.End(submitKey)
}

// fail records the message of the error. Validation and file errors are
// shown as is, other failures with the given fallback.
func (s *submission) fail(err error, fallback string) error {
	var validationError *ValidationError
	var fileError *upload.FileError
	if errors.As(err, &validationError) {
		s.message = validationError.Message
	} else if errors.As(err, &fileError) {
		s.message = fileError.Message
	} else {
		s.message = fallback
	}
	return err
}

// Message is the error shown in the form, or "".
func (s *submission) Message() string {
	return s.message
}

func (s *submission) IsSubmitting() bool {
	return s.inFlight.IsPending(submitKey)
}

// uploadFailureMessage explains a failed upload request.
func uploadFailureMessage(err error) string {
	var remoteErr *remote.Error
	if errors.As(err, &remoteErr) {
		switch {
		case remoteErr.Kind == remote.KindNetwork:
			return remoteErr.Message
		case remoteErr.StatusCode == 400:
			return "The server rejected the upload. Please check file format and size."
		case remoteErr.StatusCode >= 500:
			return "Server error during upload. Please try again later."
		}
	}
	return fmt.Sprintf("Upload failed: %s", err)
}
