package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
)

type StubSession struct {
	api.SessionService
	user     *apitype.User
	loading  bool
	listener api.SessionListener
}

func (s *StubSession) IsLoading() bool {
	return s.loading
}

func (s *StubSession) IsAuthenticated() bool {
	return s.user != nil
}

func (s *StubSession) Subscribe(listener api.SessionListener) func() {
	s.listener = listener
	return func() {
		s.listener = nil
	}
}

func (s *StubSession) set(user *apitype.User) {
	s.user = user
	s.loading = false
	if s.listener != nil {
		s.listener(user)
	}
}

func TestRouter_Resolve(t *testing.T) {
	me := apitype.NewUser(1, "me", "me@example.com")

	t.Run("Authenticated", func(t *testing.T) {
		a := assert.New(t)
		sut := NewRouter(&StubSession{user: me})

		a.Equal(Page{Route: Workspace, Path: "/", UserId: apitype.NoUser}, sut.Resolve("/"))
		a.Equal(Page{Route: OwnProfile, Path: "/profile", UserId: apitype.NoUser}, sut.Resolve("/profile"))
		a.Equal(Page{Route: UserProfile, Path: "/profile/7", UserId: 7}, sut.Resolve("/profile/7"))
		a.Equal(Page{Route: FinancialEval, Path: "/financialEval", UserId: apitype.NoUser}, sut.Resolve("/financialEval"))
	})

	t.Run("Unauthenticated gated routes redirect to root", func(t *testing.T) {
		a := assert.New(t)
		sut := NewRouter(&StubSession{})
		login := Page{Route: Login, Path: "/", UserId: apitype.NoUser, Redirected: true}

		a.Equal(Page{Route: Login, Path: "/", UserId: apitype.NoUser}, sut.Resolve("/"))
		a.Equal(login, sut.Resolve("/profile/7"))
		a.Equal(login, sut.Resolve("/financialEval"))
		a.Equal(OwnProfile, sut.Resolve("/profile").Route)
	})

	t.Run("Loading", func(t *testing.T) {
		a := assert.New(t)
		sut := NewRouter(&StubSession{loading: true})

		page := sut.Resolve("/financialEval")
		a.Equal(FinancialEval, page.Route)
		a.True(page.Loading)
		a.True(sut.Resolve("/").Loading)
	})

	t.Run("Unknown paths", func(t *testing.T) {
		a := assert.New(t)
		sut := NewRouter(&StubSession{user: me})

		a.True(sut.Resolve("/nowhere").Redirected)
		a.True(sut.Resolve("/profile/abc").Redirected)
		a.Equal(Workspace, sut.Resolve("/nowhere").Route)
	})
}

func TestRouter_Navigate(t *testing.T) {
	me := apitype.NewUser(1, "me", "me@example.com")

	t.Run("History", func(t *testing.T) {
		a := assert.New(t)
		sut := NewRouter(&StubSession{user: me})
		var pages []Page
		sut.OnChange(func(page Page) {
			pages = append(pages, page)
		})

		sut.Navigate("/profile")
		sut.Navigate("/financialEval")

		a.Equal(OwnProfile, sut.Back().Route)
		a.Equal(Workspace, sut.Back().Route)
		a.Equal(Workspace, sut.Back().Route)
		a.Len(pages, 4)
	})

	t.Run("Loading resolves when the session is known", func(t *testing.T) {
		a := assert.New(t)
		session := &StubSession{loading: true}
		sut := NewRouter(session)
		a.True(sut.Navigate("/profile/7").Loading)

		session.set(me)

		a.Equal(Page{Route: UserProfile, Path: "/profile/7", UserId: 7}, sut.Current())
	})

	t.Run("Logout leaves gated page", func(t *testing.T) {
		a := assert.New(t)
		session := &StubSession{user: me}
		sut := NewRouter(session)
		sut.Navigate("/financialEval")

		session.set(nil)

		a.Equal(Login, sut.Current().Route)
		a.True(sut.Current().Redirected)
	})

	t.Run("Close stops following the session", func(t *testing.T) {
		a := assert.New(t)
		session := &StubSession{loading: true}
		sut := NewRouter(session)
		sut.Close()

		a.Nil(session.listener)
	})
}
