package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/shlex"
	"vincit.fi/collector/api"
	"vincit.fi/collector/backend/finance"
	"vincit.fi/collector/backend/remote"
	"vincit.fi/collector/backend/social"
	"vincit.fi/collector/backend/upload"
	"vincit.fi/collector/common"
	"vincit.fi/collector/common/logger"
	"vincit.fi/collector/ui/categoryview"
	"vincit.fi/collector/ui/forms"
	"vincit.fi/collector/ui/imagegrid"
	"vincit.fi/collector/ui/router"
)

const prompt = "> "

var errQuit = errors.New("quit")

// Broker publishes to and delivers from topics.
type Broker interface {
	api.Sender
	Subscribe(topic api.Topic, fn interface{})
}

// AccountDeleter deletes the account of the logged in user.
type AccountDeleter interface {
	DeleteAccount(ctx context.Context) error
}

// Console is a line based front end. One command is handled at a time and
// the page of the current route is rendered after every navigation.
type Console struct {
	params     *common.Params
	remote     api.Remote
	session    api.SessionService
	collection api.CollectionService
	broker     Broker
	router     *router.Router
	accounts   AccountDeleter

	in     *bufio.Scanner
	out    io.Writer
	outMux sync.Mutex

	categories *categoryview.View
	images     *imagegrid.Grid
	wishlist   *imagegrid.Grid
	profile    *social.Profile
	follows    *social.FollowList
	evaluation *finance.Evaluation
	userSearch *social.UserSearch
	tagSearch  *social.TagSearch

	pageMux     sync.Mutex
	pendingPage *router.Page
}

func NewConsole(params *common.Params, remote api.Remote, session api.SessionService, collection api.CollectionService, broker Broker) *Console {
	storageBase := params.StorageBase()
	console := &Console{
		params:     params,
		remote:     remote,
		session:    session,
		collection: collection,
		broker:     broker,
		router:     router.NewRouter(session),
		accounts:   session,
		categories: categoryview.NewView(remote, collection, broker, storageBase),
		images:     imagegrid.NewGrid(remote, collection, broker, false, storageBase),
		wishlist:   imagegrid.NewGrid(remote, collection, broker, true, storageBase),
		userSearch: social.NewUserSearch(remote, params.SearchDebounce()),
		tagSearch:  social.NewTagSearch(remote, params.SearchDebounce()),
	}
	console.router.OnChange(func(page router.Page) {
		console.pageMux.Lock()
		defer console.pageMux.Unlock()
		console.pendingPage = &page
	})
	broker.Subscribe(api.ShowError, func(command *api.ErrorCommand) {
		console.printf("Error: %s\n", command.Message)
	})
	broker.Subscribe(api.ShowNotice, func(command *api.NoticeCommand) {
		console.printf("Notice: %s\n", command.Message)
	})
	broker.Subscribe(api.CategoriesUpdated, console.onCategoriesUpdated)
	broker.Subscribe(api.SessionChanged, console.onSessionChanged)
	return console
}

// WithAccountDeleter replaces the session as the one deleting the account.
func (s *Console) WithAccountDeleter(accounts AccountDeleter) *Console {
	s.accounts = accounts
	return s
}

// WithIO sets where commands are read from and output is written to.
func (s *Console) WithIO(in io.Reader, out io.Writer) *Console {
	s.in = bufio.NewScanner(in)
	s.out = out
	return s
}

// Run verifies the session, shows the initial route and handles commands
// until the input ends or the user quits.
func (s *Console) Run(ctx context.Context) error {
	defer s.close()

	s.printf("Checking session...\n")
	s.session.Verify(ctx)
	page := s.router.Navigate(s.params.InitialRoute())
	s.takePendingPage()
	s.mount(ctx, page)

	for {
		s.printf(prompt)
		if !s.in.Scan() {
			return s.in.Err()
		}
		if err := s.Execute(ctx, s.in.Text()); errors.Is(err, errQuit) {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Execute runs one command line. Failures are printed and returned. If the
// command changed the route, e.g. by logging out, the new page is shown.
func (s *Console) Execute(ctx context.Context, line string) error {
	err := s.execute(ctx, line)
	if page := s.takePendingPage(); page != nil {
		s.mount(ctx, *page)
	}
	return err
}

func (s *Console) execute(ctx context.Context, line string) error {
	words, err := shlex.Split(line)
	if err != nil {
		s.printf("Error: %s\n", err)
		return err
	}
	if len(words) == 0 {
		return nil
	}

	root := s.newRootCommand()
	cmd, _, err := root.Find(words)
	if err != nil || cmd == root {
		name := strings.ToLower(words[0])
		s.printf("Unknown command '%s'. Type 'help' for the list of commands.\n", name)
		return fmt.Errorf("unknown command '%s'", name)
	}
	if cmd.Name() != optionsName {
		s.categories.OutsideClick()
	}

	logger.Debug.Printf("Running command '%s'", cmd.Name())
	root.SetArgs(words)
	err = root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errQuit) {
		s.printf("Error: %s\n", userMessage(err))
	}
	return err
}

// onCategoriesUpdated keeps the grids in step with the collection, including
// changes made outside the console's own commands.
func (s *Console) onCategoriesUpdated(command *api.UpdateCategoriesCommand) {
	s.images.SetImages(command.Images, command.Categories)
	s.wishlist.SetImages(command.Images, command.Categories)
}

// onSessionChanged drops what the previous user had selected.
func (s *Console) onSessionChanged(command *api.SessionChangedCommand) {
	if command.User != nil {
		logger.Debug.Printf("Session of %s", command.User.Label())
		return
	}
	logger.Debug.Printf("Session ended, clearing selections")
	s.images.CancelSelection()
	s.wishlist.CancelSelection()
	s.categories.OutsideClick()
}

func (s *Console) close() {
	s.router.Close()
	s.userSearch.Close()
	s.tagSearch.Close()
}

func (s *Console) takePendingPage() *router.Page {
	s.pageMux.Lock()
	defer s.pageMux.Unlock()
	page := s.pendingPage
	s.pendingPage = nil
	return page
}

// mount loads and renders the page of a route.
func (s *Console) mount(ctx context.Context, page router.Page) {
	s.profile = nil
	s.follows = nil
	s.evaluation = nil
	if page.Loading {
		s.printf("Loading...\n")
		return
	}

	switch page.Route {
	case router.Login:
		s.printf("Please log in with: login <google-id-token>\n")
	case router.Workspace:
		if err := s.collection.LoadCategories(ctx); err != nil {
			logger.Debug.Printf("Workspace load failed: %s", err)
		}
		s.syncGrids()
		s.renderWorkspace()
	case router.OwnProfile:
		user := s.session.Current()
		if user == nil {
			s.printf("Please log in to see your profile.\n")
			return
		}
		s.mountProfile(ctx, social.NewProfile(s.remote, s.broker, user.Id(), user.Id()))
	case router.UserProfile:
		current := s.session.Current()
		if current == nil {
			return
		}
		s.mountProfile(ctx, social.NewProfile(s.remote, s.broker, page.UserId, current.Id()))
	case router.FinancialEval:
		current := s.session.Current()
		if current == nil {
			return
		}
		s.evaluation = finance.NewEvaluation(s.remote, s.broker, current.Id())
		if err := s.evaluation.Load(ctx); err != nil {
			logger.Debug.Printf("Financial evaluation failed: %s", err)
		}
		s.renderEvaluation()
	}
}

func (s *Console) mountProfile(ctx context.Context, profile *social.Profile) {
	s.profile = profile
	if err := profile.Load(ctx); err != nil {
		logger.Debug.Printf("Profile load failed: %s", err)
	}
	s.renderProfile()
}

// syncGrids shows the images of the selected category. Selections of both
// grids are cancelled.
func (s *Console) syncGrids() {
	images := s.collection.SelectedImages()
	categories := s.collection.Categories()
	s.images.SetImages(images, categories)
	s.wishlist.SetImages(images, categories)
}

// writer serializes writes with printf and table.
func (s *Console) writer() io.Writer {
	return lockedWriter{console: s}
}

type lockedWriter struct {
	console *Console
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.console.outMux.Lock()
	defer w.console.outMux.Unlock()
	return w.console.out.Write(p)
}

func (s *Console) printf(format string, args ...interface{}) {
	s.outMux.Lock()
	defer s.outMux.Unlock()
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// readLine reads an answer to a question. Input that has ended reads as "".
func (s *Console) readLine() string {
	if !s.in.Scan() {
		return ""
	}
	return strings.TrimSpace(s.in.Text())
}

// userMessage is the text shown for a failed command.
func userMessage(err error) string {
	var validationError *forms.ValidationError
	var fileError *upload.FileError
	var remoteError *remote.Error
	var failure *formFailure
	switch {
	case errors.As(err, &failure):
		return failure.message
	case errors.As(err, &validationError):
		return validationError.Message
	case errors.As(err, &fileError):
		return fileError.Message
	case errors.As(err, &remoteError):
		return remoteError.Message
	}
	return err.Error()
}
