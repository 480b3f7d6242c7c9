package tags

import (
	"errors"
	"strings"

	"vincit.fi/collector/common/util"
)

const (
	KeyEnter = "Enter"

	DuplicateMessage = "This tag already exists"
	EmptyMessage     = "Tag cannot be empty"
)

var (
	ErrDuplicate = errors.New(DuplicateMessage)
	ErrEmpty     = errors.New(EmptyMessage)
)

// Editor is the tag list of one form. Tags are unique by exact match and
// kept in the order they were added.
type Editor struct {
	tags    *util.Set[string]
	enabled bool
	message string
}

func NewEditor(initial ...string) *Editor {
	editor := &Editor{tags: util.NewSet[string]()}
	for _, tag := range initial {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			editor.tags.Add(trimmed)
		}
	}
	return editor
}

// WithEnabled sets the "add tags" toggle.
func (s *Editor) WithEnabled(enabled bool) *Editor {
	s.enabled = enabled
	return s
}

func (s *Editor) SetEnabled(enabled bool) {
	s.enabled = enabled
}

func (s *Editor) IsEnabled() bool {
	return s.enabled
}

// Add adds the trimmed tag. Empty and duplicate tags are rejected and the
// list is left as it was.
func (s *Editor) Add(raw string) error {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		s.message = EmptyMessage
		return ErrEmpty
	}
	if !s.tags.Add(tag) {
		s.message = DuplicateMessage
		return ErrDuplicate
	}
	s.message = ""
	return nil
}

func (s *Editor) Remove(tag string) {
	s.tags.Remove(tag)
}

// KeyPress handles a key typed in the tag input. Enter adds the input.
// Returns true when the key was consumed.
func (s *Editor) KeyPress(key string, raw string) (bool, error) {
	if key != KeyEnter || !s.enabled {
		return false, nil
	}
	return true, s.Add(raw)
}

func (s *Editor) Tags() []string {
	return s.tags.Values()
}

// Message is the error of the latest add, or empty.
func (s *Editor) Message() string {
	return s.message
}

// Payload returns the tags to send when creating something. Nil means the
// tags field is left out.
func (s *Editor) Payload() []string {
	if !s.enabled || s.tags.Len() == 0 {
		return nil
	}
	return s.tags.Values()
}

// EditPayload returns the tags to send when editing. The second value is
// false when the tags must not be sent at all.
func (s *Editor) EditPayload() ([]string, bool) {
	if !s.enabled {
		return nil, false
	}
	return s.tags.Values(), true
}
