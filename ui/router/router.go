package router

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/mux"
	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/logger"
)

const Root = "/"

type Route string

const (
	Workspace     = Route("workspace")
	Login         = Route("login")
	OwnProfile    = Route("own-profile")
	UserProfile   = Route("user-profile")
	FinancialEval = Route("financial-eval")
)

// Page is a resolved path. A gated page requested while the session is
// still loading has Loading set and must not show its content yet.
type Page struct {
	Route      Route
	Path       string
	UserId     apitype.UserId
	Loading    bool
	Redirected bool
}

type Listener func(page Page)

// Router maps paths to pages and keeps the navigation history.
type Router struct {
	session api.SessionService
	routes  *mux.Router
	gated   map[Route]bool

	mux         sync.Mutex
	requested   string
	current     Page
	history     []string
	listener    Listener
	unsubscribe func()
}

func NewRouter(session api.SessionService) *Router {
	routes := mux.NewRouter()
	routes.Path("/").Name(string(Workspace))
	routes.Path("/profile").Name(string(OwnProfile))
	routes.Path("/profile/{id:[0-9]+}").Name(string(UserProfile))
	routes.Path("/financialEval").Name(string(FinancialEval))

	router := &Router{
		session: session,
		routes:  routes,
		gated: map[Route]bool{
			UserProfile:   true,
			FinancialEval: true,
		},
		requested: Root,
	}
	router.current = router.Resolve(Root)
	router.unsubscribe = session.Subscribe(func(*apitype.User) {
		router.Refresh()
	})
	return router
}

// OnChange sets the function called after the current page changes.
func (s *Router) OnChange(listener Listener) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.listener = listener
}

// Resolve maps a path to a page without navigating. Unknown paths and gated
// paths without a user resolve to the root page.
func (s *Router) Resolve(path string) Page {
	route, userId, ok := s.match(path)
	if !ok {
		logger.Debug.Printf("No route for '%s'", path)
		page := s.resolveRoot()
		page.Redirected = true
		return page
	}

	if route == Workspace {
		return s.resolveRoot()
	}
	page := Page{Route: route, Path: path, UserId: userId}
	if !s.gated[route] {
		return page
	}
	if s.session.IsLoading() {
		page.Loading = true
		return page
	}
	if !s.session.IsAuthenticated() {
		logger.Info.Printf("'%s' needs a logged in user, redirecting to root", path)
		page = s.resolveRoot()
		page.Redirected = true
	}
	return page
}

func (s *Router) resolveRoot() Page {
	page := Page{Route: Workspace, Path: Root, UserId: apitype.NoUser}
	if s.session.IsLoading() {
		page.Loading = true
	} else if !s.session.IsAuthenticated() {
		page.Route = Login
	}
	return page
}

func (s *Router) match(path string) (Route, apitype.UserId, bool) {
	parsed, err := url.Parse(path)
	if err != nil {
		return "", apitype.NoUser, false
	}
	request := &http.Request{Method: http.MethodGet, URL: parsed}
	var match mux.RouteMatch
	if !s.routes.Match(request, &match) || match.Route == nil {
		return "", apitype.NoUser, false
	}

	userId := apitype.NoUser
	if id, ok := match.Vars["id"]; ok {
		if userId, err = apitype.ParseUserId(id); err != nil {
			return "", apitype.NoUser, false
		}
	}
	return Route(match.Route.GetName()), userId, true
}

// Navigate moves to the path and records it in the history.
func (s *Router) Navigate(path string) Page {
	page := s.Resolve(path)
	s.mux.Lock()
	s.history = append(s.history, s.requested)
	s.requested = path
	s.current = page
	listener := s.listener
	s.mux.Unlock()

	logger.Debug.Printf("Navigated to '%s' (%s)", path, page.Route)
	if listener != nil {
		listener(page)
	}
	return page
}

// Back returns to the previous path. With no history the root is shown.
func (s *Router) Back() Page {
	s.mux.Lock()
	previous := Root
	if n := len(s.history); n > 0 {
		previous = s.history[n-1]
		s.history = s.history[:n-1]
	}
	s.mux.Unlock()

	page := s.Resolve(previous)
	s.setCurrent(previous, page)
	return page
}

// Refresh resolves the requested path again, e.g. when the session has
// finished loading or the user has logged out.
func (s *Router) Refresh() Page {
	s.mux.Lock()
	requested := s.requested
	s.mux.Unlock()

	page := s.Resolve(requested)
	s.setCurrent(requested, page)
	return page
}

func (s *Router) setCurrent(requested string, page Page) {
	s.mux.Lock()
	s.requested = requested
	changed := s.current != page
	s.current = page
	listener := s.listener
	s.mux.Unlock()

	if changed && listener != nil {
		listener(page)
	}
}

func (s *Router) Current() Page {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.current
}

func (s *Router) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
