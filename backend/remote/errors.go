package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	// KindNetwork is a transport failure. The request may not have reached
	// the server.
	KindNetwork Kind = iota
	// KindStatus is a non-2xx response.
	KindStatus
	// KindDecode is a 2xx response with a body that could not be read.
	KindDecode
)

const networkErrorMessage = "Network error. Please check your connection and try again."

// Error is returned by every failed call of the Client.
type Error struct {
	Op         string
	Kind       Kind
	StatusCode int
	// Message is the text meant for the user
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newNetworkError(op string, err error) error {
	return &Error{Op: op, Kind: KindNetwork, Message: networkErrorMessage, Err: err}
}

func newDecodeError(op string, err error) error {
	return &Error{Op: op, Kind: KindDecode, Message: "Unexpected response from server.", Err: err}
}

func newStatusError(op string, statusCode int, body []byte) error {
	return &Error{Op: op, Kind: KindStatus, StatusCode: statusCode, Message: statusMessage(statusCode, body)}
}

// statusMessage extracts the server text from an error body: a JSON detail,
// error or message field, otherwise the raw text.
func statusMessage(statusCode int, body []byte) string {
	var parsed struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, text := range []string{parsed.Detail, parsed.Error, parsed.Message} {
			if text != "" {
				return text
			}
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "<") {
		return text
	}
	return fmt.Sprintf("HTTP error! Status: %d", statusCode)
}

// IsStatus tells if err is a status error with the given code.
func IsStatus(err error, statusCode int) bool {
	var remoteErr *Error
	return errors.As(err, &remoteErr) && remoteErr.Kind == KindStatus && remoteErr.StatusCode == statusCode
}

// UserMessage returns the text to show for an error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		return remoteErr.Message
	}
	return err.Error()
}
