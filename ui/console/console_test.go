package console

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/backend/collection"
	"vincit.fi/collector/common"
	"vincit.fi/collector/common/event"
)

type MockRemote struct {
	api.Remote
	mock.Mock
}

func (s *MockRemote) FetchCategories(ctx context.Context) ([]*apitype.Category, error) {
	args := s.Called()
	categories, _ := args.Get(0).([]*apitype.Category)
	return categories, args.Error(1)
}

func (s *MockRemote) DeleteCategory(ctx context.Context, id apitype.CategoryId) error {
	return s.Called(id).Error(0)
}

func (s *MockRemote) UploadImage(ctx context.Context, command *api.UploadImageCommand) (*apitype.Image, error) {
	args := s.Called(command)
	image, _ := args.Get(0).(*apitype.Image)
	return image, args.Error(1)
}

func (s *MockRemote) UpdateCategoryTags(ctx context.Context, id apitype.CategoryId, tags []string) (*apitype.Category, error) {
	args := s.Called(id, tags)
	category, _ := args.Get(0).(*apitype.Category)
	return category, args.Error(1)
}

func (s *MockRemote) BulkDeleteImages(ctx context.Context, ids []apitype.ImageId) error {
	return s.Called(ids).Error(0)
}

type StubSession struct {
	api.SessionService
	user      *apitype.User
	verified  bool
	listeners []api.SessionListener
	deleteErr error
}

func (s *StubSession) Current() *apitype.User {
	return s.user.Copy()
}

func (s *StubSession) IsLoading() bool {
	return !s.verified
}

func (s *StubSession) IsAuthenticated() bool {
	return s.user != nil
}

func (s *StubSession) RequireUser() (*apitype.User, error) {
	if s.user == nil {
		return nil, errors.New("not authenticated")
	}
	return s.user, nil
}

func (s *StubSession) Verify(ctx context.Context) *apitype.User {
	s.set(s.user)
	return s.user
}

func (s *StubSession) AwaitLogin(ctx context.Context, callback api.LoginCallback) (*apitype.User, error) {
	if token := <-callback; token != "token-1" {
		return nil, errors.New("invalid token")
	}
	s.set(apitype.NewUser(1, "me", "me@example.com"))
	return s.user, nil
}

func (s *StubSession) Logout(ctx context.Context) {
	s.set(nil)
}

func (s *StubSession) DeleteAccount(ctx context.Context) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.set(nil)
	return nil
}

func (s *StubSession) Subscribe(listener api.SessionListener) func() {
	s.listeners = append(s.listeners, listener)
	return func() {}
}

func (s *StubSession) set(user *apitype.User) {
	s.user = user
	s.verified = true
	for _, listener := range s.listeners {
		listener(user)
	}
}

func coins() *apitype.Category {
	return apitype.NewCategory(1, "Coins").WithImages(
		apitype.NewImage(11, 1, "Denarius"),
		apitype.NewImage(12, 1, "Thaler"),
		apitype.NewImage(13, 1, "Solidus").WithWishlist(true, "https://shop.example.com"),
	)
}

func stamps() *apitype.Category {
	return apitype.NewCategory(2, "Stamps")
}

func pngFile(t *testing.T) string {
	buf := &bytes.Buffer{}
	require.Nil(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 4, 2))))
	path := filepath.Join(t.TempDir(), "coin.png")
	require.Nil(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

type fixture struct {
	remote     *MockRemote
	session    *StubSession
	collection *collection.Service
	out        *bytes.Buffer
}

func newFixture(user *apitype.User) *fixture {
	remote := &MockRemote{}
	remote.On("FetchCategories").Return([]*apitype.Category{coins(), stamps()}, nil).Maybe()
	session := &StubSession{user: user}
	collectionService := collection.NewService(remote, event.InitDevNullBus(), nil)
	session.Subscribe(func(user *apitype.User) {
		if user == nil {
			collectionService.Reset()
		}
	})
	return &fixture{
		remote:     remote,
		session:    session,
		collection: collectionService,
		out:        &bytes.Buffer{},
	}
}

func (s *fixture) run(t *testing.T, input ...string) string {
	t.Helper()
	sut := NewConsole(common.NewEmptyParams(), s.remote, s.session, s.collection, event.InitDevNullBus()).
		WithIO(strings.NewReader(strings.Join(input, "\n")+"\n"), s.out)
	require.Nil(t, sut.Run(context.Background()))
	return s.out.String()
}

func TestConsole_Login(t *testing.T) {
	t.Run("Anonymous user sees the login page", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(nil)

		out := fixture.run(t, "go /financialEval", "quit")

		a.Equal(2, strings.Count(out, "Please log in with"))
		fixture.remote.AssertNotCalled(t, "FetchCategories")
	})

	t.Run("Login with a pasted token", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(nil)

		out := fixture.run(t, "login", "token-1", "quit")

		a.Contains(out, "Paste the Google ID token")
		a.Contains(out, "Logged in as")
	})

	t.Run("Logout shows the login page", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(apitype.NewUser(1, "me", "me@example.com"))

		out := fixture.run(t, "logout")

		a.Contains(out, "Logged out")
		a.Contains(out, "Please log in with")
		a.Empty(fixture.collection.Categories())
	})
}

func TestConsole_Workspace(t *testing.T) {
	me := apitype.NewUser(1, "me", "me@example.com")

	t.Run("Shows collections and images", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)

		out := fixture.run(t)

		a.Contains(out, "Coins")
		a.Contains(out, "Stamps")
		a.Contains(out, "Denarius")
		a.Contains(out, "Wishlist")
		a.Contains(out, "https://shop.example.com")
	})

	t.Run("Deleting the selected collection selects the next", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)
		fixture.remote.On("DeleteCategory", apitype.CategoryId(1)).Return(nil)

		out := fixture.run(t, "delete-category 1", "delete")

		a.Contains(out, "This will permanently delete \"Coins\" and all 3 images within it.")
		a.Equal("Stamps", fixture.collection.SelectedName())
		a.Len(fixture.collection.Categories(), 1)
	})

	t.Run("Cancelled delete", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)

		out := fixture.run(t, "delete-category 1", "no")

		a.Contains(out, "Cancelled")
		fixture.remote.AssertNotCalled(t, "DeleteCategory", mock.Anything)
	})

	t.Run("Select", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)

		out := fixture.run(t, "select Stamps", "select Nothing")

		a.Equal("Stamps", fixture.collection.SelectedName())
		a.Contains(out, "no collection named 'Nothing'")
	})

	t.Run("Text file upload is rejected before sending", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)
		path := filepath.Join(t.TempDir(), "notes.txt")
		a.Nil(os.WriteFile(path, []byte("just some notes"), 0o600))

		out := fixture.run(t, "upload "+path+" My notes")

		a.Contains(out, "Unsupported file type: text/plain")
		fixture.remote.AssertNotCalled(t, "UploadImage", mock.Anything)
	})

	t.Run("Bulk delete of checked images", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)
		fixture.remote.On("BulkDeleteImages", []apitype.ImageId{11, 12}).Return(nil)

		out := fixture.run(t, "check 11 12", "delete-images")

		a.Contains(out, "2 selected")
		a.Contains(out, "Deleted 2 images")
		fixture.remote.AssertExpectations(t)
	})

	t.Run("Checking an image of another view", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)

		out := fixture.run(t, "check 13")

		a.Contains(out, "no image 13 in this view")
	})
}

func TestConsole_Commands(t *testing.T) {
	me := apitype.NewUser(1, "me", "me@example.com")

	t.Run("Unknown command", func(t *testing.T) {
		a := assert.New(t)
		out := newFixture(me).run(t, "dance")

		a.Contains(out, "Unknown command 'dance'")
	})

	t.Run("Help", func(t *testing.T) {
		a := assert.New(t)
		out := newFixture(me).run(t, "help")

		a.Contains(out, "delete-category <id>")
		a.Contains(out, "search-tag <tag>")
	})

	t.Run("Account deletion needs confirmation", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)

		fixture.run(t, "delete-account", "no")

		a.NotNil(fixture.session.user)
	})

	t.Run("Failed account deletion keeps the user", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)
		fixture.session.deleteErr = errors.New("server error")

		out := fixture.run(t, "delete-account", "yes")

		a.Contains(out, "Error: server error")
		a.NotNil(fixture.session.user)
	})

	t.Run("Set goal only on the finance page", func(t *testing.T) {
		a := assert.New(t)
		out := newFixture(me).run(t, "set-goal 100")

		a.Contains(out, errWrongPage.Error())
	})
}

func TestConsole_Quoting(t *testing.T) {
	me := apitype.NewUser(1, "me", "me@example.com")

	t.Run("Quoted flag values keep their spaces", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)
		path := pngFile(t)
		fixture.remote.On("UploadImage", mock.MatchedBy(func(command *api.UploadImageCommand) bool {
			return command.Title == "Roman Denarius" &&
				command.Description == "A Roman coin" &&
				len(command.Tags) == 2 && command.Tags[0] == "Roman Empire" &&
				command.File.FileName == "coin.png"
		})).Return(apitype.NewImage(14, 1, "Roman Denarius"), nil)

		out := fixture.run(t, `upload --description "A Roman coin" --tags "Roman Empire,silver" `+path+` "Roman Denarius"`)

		a.Contains(out, "Preview: 4x2")
		a.Contains(out, "Uploaded 'Roman Denarius'")
		fixture.remote.AssertExpectations(t)
	})

	t.Run("Preview is saved on request", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)
		fixture.remote.On("UploadImage", mock.Anything).Return(apitype.NewImage(14, 1, "Denarius"), nil)
		saved := filepath.Join(t.TempDir(), "preview.png")

		out := fixture.run(t, "upload --save-preview "+saved+" "+pngFile(t)+" Denarius")

		a.Contains(out, "Preview saved to "+saved)
		a.FileExists(saved)
	})

	t.Run("Unterminated quote", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)

		out := fixture.run(t, `upload --description "A Roman coin`)

		a.Contains(out, "Error:")
		fixture.remote.AssertNotCalled(t, "UploadImage", mock.Anything)
	})

	t.Run("Tags with spaces", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)
		fixture.remote.On("UpdateCategoryTags", apitype.CategoryId(1), []string{"Roman Empire", "silver"}).
			Return(apitype.NewCategory(1, "Coins"), nil)

		fixture.run(t, `edit-tags 1 "Roman Empire" silver`)

		fixture.remote.AssertExpectations(t)
		a.Equal("Coins", fixture.collection.SelectedName())
	})

	t.Run("Duplicate tag is refused", func(t *testing.T) {
		a := assert.New(t)
		fixture := newFixture(me)

		out := fixture.run(t, "edit-tags 1 silver silver")

		a.Contains(out, "This tag already exists")
		fixture.remote.AssertNotCalled(t, "UpdateCategoryTags", mock.Anything, mock.Anything)
	})
}

func TestConsole_Images(t *testing.T) {
	me := apitype.NewUser(1, "me", "me@example.com")

	t.Run("Open shows the image", func(t *testing.T) {
		a := assert.New(t)
		out := newFixture(me).run(t, "open --wishlist 13")

		a.Contains(out, "FIELD")
		a.Contains(out, "Solidus")
		a.Contains(out, "Buy")
	})

	t.Run("Open checks images while selecting", func(t *testing.T) {
		a := assert.New(t)
		out := newFixture(me).run(t, "select-images", "open 11", "open 12")

		a.Contains(out, "1 selected")
		a.Contains(out, "2 selected")
		a.NotContains(out, "FIELD")
	})

	t.Run("Open an image of another view", func(t *testing.T) {
		a := assert.New(t)
		out := newFixture(me).run(t, "open 13")

		a.Contains(out, "no image 13 in this view")
	})
}

func TestConsole_Options(t *testing.T) {
	me := apitype.NewUser(1, "me", "me@example.com")

	t.Run("Options menu closes on the next command", func(t *testing.T) {
		a := assert.New(t)
		out := newFixture(me).run(t, "options 2", "show")

		a.Equal(1, strings.Count(out, "Options for 'Stamps'"))
		a.Contains(out, "toggle-visibility 2")
	})

	t.Run("Options of another collection replace the open menu", func(t *testing.T) {
		a := assert.New(t)
		out := newFixture(me).run(t, "options 2", "options 1", "options 1")

		a.Equal(1, strings.Count(out, "Options for 'Stamps'"))
		a.Equal(1, strings.Count(out, "Options for 'Coins'"))
	})
}

func TestConsole_Events(t *testing.T) {
	a := assert.New(t)
	fixture := newFixture(apitype.NewUser(1, "me", "me@example.com"))
	broker := event.InitBus(10)
	sut := NewConsole(common.NewEmptyParams(), fixture.remote, fixture.session, fixture.collection, broker).
		WithIO(strings.NewReader(""), fixture.out)
	defer sut.close()

	broker.SendCommandToTopic(api.CategoriesUpdated, &api.UpdateCategoriesCommand{
		Categories: []*apitype.Category{coins()},
		Selected:   coins(),
		Images:     coins().Images(),
	})

	a.Eventually(func() bool {
		return len(sut.images.Items()) == 2 && len(sut.wishlist.Items()) == 1
	}, time.Second, 10*time.Millisecond)

	sut.images.BeginSelection()
	sut.images.Toggle(11)
	broker.SendCommandToTopic(api.SessionChanged, &api.SessionChangedCommand{User: nil})

	a.Eventually(func() bool {
		return !sut.images.Selection().IsSelecting()
	}, time.Second, 10*time.Millisecond)
}
