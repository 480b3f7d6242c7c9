package social

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/logger"
	"vincit.fi/collector/common/util"
)

const (
	UserSearchMinLength = 2
	TagSearchMinLength  = 1

	noValidTagMessage = "No valid tag provided"
)

type fetchFunc[T any] func(ctx context.Context, query string) ([]T, error)

// search debounces typed input and drops answers to queries that are no
// longer the latest one.
type search[T any] struct {
	debouncer *util.Debouncer
	minLength int
	fetch     fetchFunc[T]
	// tooShort is the error shown for a too short query. Empty means the
	// search just goes idle.
	tooShort    string
	failMessage func(query string) string

	mux      sync.Mutex
	sequence uint64
	state    ViewState
	query    string
	results  []T
	message  string
	onChange func()
}

func newSearch[T any](delay time.Duration, minLength int, fetch fetchFunc[T]) *search[T] {
	return &search[T]{
		debouncer: util.NewDebouncer(delay),
		minLength: minLength,
		fetch:     fetch,
		state:     Idle,
		results:   []T{},
	}
}

// Input is called on every change of the typed query. The request is sent
// after the quiet period.
func (s *search[T]) Input(ctx context.Context, query string) {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < s.minLength {
		s.debouncer.Cancel()
		s.reject(trimmed)
		return
	}
	s.debouncer.Trigger(func() {
		_ = s.Search(ctx, trimmed)
	})
}

// Search sends the query right away.
func (s *search[T]) Search(ctx context.Context, query string) error {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < s.minLength {
		s.reject(trimmed)
		return nil
	}

	s.mux.Lock()
	s.sequence++
	sequence := s.sequence
	s.state = Loading
	s.query = trimmed
	s.message = ""
	s.mux.Unlock()
	s.notify()

	results, err := s.fetch(ctx, trimmed)

	s.mux.Lock()
	if sequence != s.sequence {
		s.mux.Unlock()
		logger.Trace.Printf("Dropped stale results for '%s'", trimmed)
		return nil
	}
	if err != nil {
		s.state = Error
		s.message = s.failMessage(trimmed)
		s.results = []T{}
	} else {
		s.state = stateOf(len(results))
		s.results = results
	}
	s.mux.Unlock()
	s.notify()
	return err
}

func (s *search[T]) reject(query string) {
	s.mux.Lock()
	s.sequence++
	s.query = query
	s.results = []T{}
	if s.tooShort != "" {
		s.state = Error
		s.message = s.tooShort
	} else {
		s.state = Idle
		s.message = ""
	}
	s.mux.Unlock()
	s.notify()
}

func (s *search[T]) notify() {
	s.mux.Lock()
	onChange := s.onChange
	s.mux.Unlock()
	if onChange != nil {
		onChange()
	}
}

// OnChange sets the function called after every state change.
func (s *search[T]) OnChange(fn func()) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.onChange = fn
}

func (s *search[T]) Close() {
	s.debouncer.Cancel()
}

func (s *search[T]) State() ViewState {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.state
}

func (s *search[T]) Query() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.query
}

func (s *search[T]) Message() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.message
}

func (s *search[T]) Results() []T {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]T{}, s.results...)
}

// UserSearch finds users by name once at least two characters are typed.
type UserSearch struct {
	*search[*apitype.User]
}

func NewUserSearch(remote api.ProfileRemote, delay time.Duration) *UserSearch {
	s := newSearch[*apitype.User](delay, UserSearchMinLength, remote.SearchUsers)
	s.failMessage = func(query string) string {
		return "Failed to search users. Please try again later."
	}
	return &UserSearch{search: s}
}

// TagSearch finds public collections and images with a tag.
type TagSearch struct {
	*search[*apitype.TagSearchResult]
}

func NewTagSearch(remote api.TagRemote, delay time.Duration) *TagSearch {
	s := newSearch[*apitype.TagSearchResult](delay, TagSearchMinLength, remote.SearchByTag)
	s.tooShort = noValidTagMessage
	s.failMessage = func(query string) string {
		return fmt.Sprintf("Failed to search for tag \"%s\". Please try again later.", query)
	}
	return &TagSearch{search: s}
}

// EmptyMessage is shown when nothing was found.
func (s *TagSearch) EmptyMessage() string {
	return fmt.Sprintf("No users found with content tagged \"%s\".", s.Query())
}
