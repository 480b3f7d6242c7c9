package session

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/logger"
)

var ErrNotAuthenticated = errors.New("session: not authenticated")

// CookieJar is the cookie state of the API client.
type CookieJar interface {
	BaseUrl() string
	Cookies() []*http.Cookie
	RestoreCookies(cookies []*http.Cookie)
	ClearCookies()
}

// CookieStore persists the cookies between runs.
type CookieStore interface {
	SaveCookies(baseUrl string, cookies []*http.Cookie) error
	LoadCookies(baseUrl string) ([]*http.Cookie, error)
	ClearCookies(baseUrl string) error
}

type LoginCallback = api.LoginCallback

type Listener = api.SessionListener

// Session is the authentication state of the application. It starts in the
// loading state until Verify has been called.
type Session struct {
	remote      api.AuthRemote
	jar         CookieJar
	cookieStore CookieStore
	sender      api.Sender

	mux       sync.Mutex
	user      *apitype.User
	loading   bool
	listeners map[int]Listener
	nextId    int

	api.SessionService
}

func NewSession(remote api.AuthRemote, jar CookieJar, cookieStore CookieStore, sender api.Sender) *Session {
	session := &Session{
		remote:      remote,
		jar:         jar,
		cookieStore: cookieStore,
		sender:      sender,
		loading:     true,
		listeners:   map[int]Listener{},
	}
	session.restoreCookies()
	return session
}

func (s *Session) restoreCookies() {
	cookies, err := s.cookieStore.LoadCookies(s.jar.BaseUrl())
	if err != nil {
		logger.Warn.Printf("Could not load stored cookies: %s", err)
		return
	}
	logger.Debug.Printf("Restoring %d cookies", len(cookies))
	s.jar.RestoreCookies(cookies)
}

func (s *Session) persistCookies() {
	if err := s.cookieStore.SaveCookies(s.jar.BaseUrl(), s.jar.Cookies()); err != nil {
		logger.Warn.Printf("Could not store cookies: %s", err)
	}
}

func (s *Session) clearCookies() {
	s.jar.ClearCookies()
	if err := s.cookieStore.ClearCookies(s.jar.BaseUrl()); err != nil {
		logger.Warn.Printf("Could not clear stored cookies: %s", err)
	}
}

// Current returns a copy of the user or nil when not authenticated.
func (s *Session) Current() *apitype.User {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.user.Copy()
}

func (s *Session) IsLoading() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.loading
}

func (s *Session) IsAuthenticated() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.user != nil
}

// RequireUser returns the current user or ErrNotAuthenticated.
func (s *Session) RequireUser() (*apitype.User, error) {
	if user := s.Current(); user != nil {
		return user, nil
	}
	return nil, ErrNotAuthenticated
}

// Verify asks the server who is logged in. Any failure means that nobody is.
func (s *Session) Verify(ctx context.Context) *apitype.User {
	status, err := s.remote.CheckAuth(ctx)
	var user *apitype.User
	if err != nil {
		logger.Warn.Printf("Auth check failed: %s", err)
	} else if status.IsAuthenticated() {
		user = status.User()
		s.persistCookies()
	}
	logger.Info.Printf("Session verified, authenticated: %t", user != nil)
	s.setUser(user)
	return user.Copy()
}

func (s *Session) Login(ctx context.Context, idToken string) (*apitype.User, error) {
	user, err := s.remote.LoginWithGoogle(ctx, idToken)
	if err != nil {
		return nil, err
	}
	s.persistCookies()
	s.setUser(user)
	logger.Info.Printf("Logged in as %s", user.Label())
	return user.Copy(), nil
}

// AwaitLogin waits for the external sign in to deliver a token and then logs
// in with it.
func (s *Session) AwaitLogin(ctx context.Context, callback LoginCallback) (*apitype.User, error) {
	select {
	case idToken, ok := <-callback:
		if !ok || idToken == "" {
			return nil, ErrNotAuthenticated
		}
		return s.Login(ctx, idToken)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LoginUser sets the user directly, e.g. after a sign in completed elsewhere.
func (s *Session) LoginUser(user *apitype.User) {
	s.persistCookies()
	s.setUser(user.Copy())
}

// Logout is best effort. Local state is cleared even if the server call
// fails.
func (s *Session) Logout(ctx context.Context) {
	if err := s.remote.Logout(ctx); err != nil {
		logger.Warn.Printf("Server logout failed, clearing local session anyway: %s", err)
	}
	s.clearCookies()
	s.setUser(nil)
	logger.Info.Printf("Logged out")
}

// DeleteAccount deletes the account on the server. On failure nothing
// changes locally.
func (s *Session) DeleteAccount(ctx context.Context) error {
	if err := s.remote.DeleteAccount(ctx); err != nil {
		return err
	}
	s.clearCookies()
	s.setUser(nil)
	logger.Info.Printf("Account deleted")
	return nil
}

// Subscribe registers a listener for session changes. The returned function
// removes it.
func (s *Session) Subscribe(listener Listener) func() {
	s.mux.Lock()
	defer s.mux.Unlock()
	id := s.nextId
	s.nextId++
	s.listeners[id] = listener
	return func() {
		s.mux.Lock()
		defer s.mux.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Session) setUser(user *apitype.User) {
	s.mux.Lock()
	s.user = user
	s.loading = false
	listeners := make([]Listener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.mux.Unlock()

	for _, listener := range listeners {
		listener(user.Copy())
	}
	s.sender.SendCommandToTopic(api.SessionChanged, &api.SessionChangedCommand{User: user.Copy()})
}
