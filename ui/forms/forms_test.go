package forms

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/backend/remote"
	"vincit.fi/collector/common/util"
	"vincit.fi/collector/ui/tags"
)

type MockRemote struct {
	api.Remote
	mock.Mock
}

func (s *MockRemote) CreateCategory(ctx context.Context, command *api.CreateCategoryCommand) (*apitype.Category, error) {
	args := s.Called(command)
	category, _ := args.Get(0).(*apitype.Category)
	return category, args.Error(1)
}

func (s *MockRemote) UploadImage(ctx context.Context, command *api.UploadImageCommand) (*apitype.Image, error) {
	args := s.Called(command)
	image, _ := args.Get(0).(*apitype.Image)
	return image, args.Error(1)
}

func (s *MockRemote) GenerateFields(ctx context.Context, query *api.GenerateFieldsQuery) (*apitype.AiFields, error) {
	args := s.Called(query)
	fields, _ := args.Get(0).(*apitype.AiFields)
	return fields, args.Error(1)
}

type MockCollection struct {
	api.CollectionService
	mock.Mock
}

func (s *MockCollection) RecordCategoryAdded(ctx context.Context) error {
	return s.Called().Error(0)
}

func (s *MockCollection) RecordImageAdded(ctx context.Context) error {
	return s.Called().Error(0)
}

type StubTarget struct {
	err        error
	details    *api.UpdateImageDetailsCommand
	profile    *api.UpdateProfileCommand
	goal       *apitype.NewGoalRequest
	categoryId apitype.CategoryId
	tags       []string
	formError  string
}

func (s *StubTarget) EditSelected(ctx context.Context, command *api.UpdateImageDetailsCommand) error {
	s.details = command
	return s.err
}

func (s *StubTarget) Update(ctx context.Context, command *api.UpdateProfileCommand) error {
	s.profile = command
	return s.err
}

func (s *StubTarget) SetGoal(ctx context.Context, request *apitype.NewGoalRequest) error {
	s.goal = request
	return s.err
}

func (s *StubTarget) GoalFormError() string {
	return s.formError
}

func (s *StubTarget) EditTags(ctx context.Context, id apitype.CategoryId, editor *tags.Editor) error {
	s.categoryId = id
	s.tags = editor.Tags()
	return s.err
}

func writeFile(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.Nil(t, os.WriteFile(path, data, 0o600))
	return path
}

func pngFile(t *testing.T) string {
	buf := &bytes.Buffer{}
	require.Nil(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return writeFile(t, "coin.png", buf.Bytes())
}

func TestAddCategoryForm(t *testing.T) {
	ctx := context.Background()

	t.Run("Name is required", func(t *testing.T) {
		a := require.New(t)
		remote := &MockRemote{}
		sut := NewAddCategoryForm(remote, &MockCollection{})
		sut.Name = "   "

		err := sut.Submit(ctx)

		a.ErrorIs(err, ErrValidation)
		a.Equal("Collection name is required", sut.Message())
		remote.AssertNotCalled(t, "CreateCategory", mock.Anything)
	})

	t.Run("Tags only when enabled", func(t *testing.T) {
		a := require.New(t)
		remote := &MockRemote{}
		collection := &MockCollection{}
		remote.On("CreateCategory", &api.CreateCategoryCommand{Name: "Coins", Public: true}).Return(apitype.NewCategory(1, "Coins"), nil)
		collection.On("RecordCategoryAdded").Return(nil)
		sut := NewAddCategoryForm(remote, collection)
		sut.Name = " Coins "
		a.Nil(sut.Tags.Add("rare"))

		a.Nil(sut.Submit(ctx))

		collection.AssertExpectations(t)
	})

	t.Run("Placeholder and tags", func(t *testing.T) {
		a := require.New(t)
		remote := &MockRemote{}
		collection := &MockCollection{}
		remote.On("CreateCategory", mock.MatchedBy(func(command *api.CreateCategoryCommand) bool {
			return command.Placeholder != nil &&
				command.Placeholder.ContentType == "image/png" &&
				len(command.Tags) == 1
		})).Return(apitype.NewCategory(1, "Coins"), nil)
		collection.On("RecordCategoryAdded").Return(nil)
		sut := NewAddCategoryForm(remote, collection)
		sut.Name = "Coins"
		sut.PlaceholderPath = pngFile(t)
		sut.Tags.SetEnabled(true)
		a.Nil(sut.Tags.Add("rare"))

		a.Nil(sut.Submit(ctx))
		a.NotNil(sut.Preview())
	})

	t.Run("Server failure", func(t *testing.T) {
		a := require.New(t)
		remote := &MockRemote{}
		remote.On("CreateCategory", mock.Anything).Return(nil, errors.New("500"))
		sut := NewAddCategoryForm(remote, &MockCollection{})
		sut.Name = "Coins"

		a.NotNil(sut.Submit(ctx))
		a.Equal("Failed to create collection. Please try again.", sut.Message())
	})

	t.Run("Double submit", func(t *testing.T) {
		a := assert.New(t)
		sut := NewAddCategoryForm(&MockRemote{}, &MockCollection{})
		sut.inFlight.TryBegin(submitKey)

		a.True(sut.IsSubmitting())
		a.ErrorIs(sut.Submit(ctx), util.ErrInFlight)
	})
}

func TestAddImageForm_Submit(t *testing.T) {
	ctx := context.Background()
	coins := apitype.NewCategory(1, "Coins")

	t.Run("Required fields in order", func(t *testing.T) {
		a := require.New(t)
		sut := NewAddImageForm(&MockRemote{}, &MockCollection{})

		a.NotNil(sut.Submit(ctx))
		a.Equal("Title is required", sut.Message())

		sut.Title = "Denarius"
		a.NotNil(sut.Submit(ctx))
		a.Equal("Please select a collection", sut.Message())

		sut.WithCategory(coins)
		a.NotNil(sut.Submit(ctx))
		a.Equal("Please select an image to upload", sut.Message())
	})

	t.Run("Text file is rejected before upload", func(t *testing.T) {
		a := require.New(t)
		remote := &MockRemote{}
		sut := NewAddImageForm(remote, &MockCollection{}).WithCategory(coins)
		sut.Title = "Notes"
		sut.FilePath = writeFile(t, "notes.txt", []byte("plain text notes"))

		a.NotNil(sut.Submit(ctx))

		a.Equal("Unsupported file type: text/plain. Please use JPEG, PNG, GIF or WebP.", sut.Message())
		remote.AssertNotCalled(t, "UploadImage", mock.Anything)
	})

	t.Run("Invalid valuation", func(t *testing.T) {
		a := require.New(t)
		sut := NewAddImageForm(&MockRemote{}, &MockCollection{}).WithCategory(coins)
		sut.Title = "Denarius"
		sut.FilePath = "coin.png"
		sut.Valuation = "cheap"

		a.ErrorIs(sut.Submit(ctx), ErrValidation)
		a.Equal("Valuation must be a number", sut.Message())
	})

	t.Run("Upload", func(t *testing.T) {
		a := require.New(t)
		remote := &MockRemote{}
		collection := &MockCollection{}
		remote.On("UploadImage", mock.MatchedBy(func(command *api.UploadImageCommand) bool {
			return command.Title == "Denarius" &&
				command.CategoryId == 1 &&
				command.PurchaseUrl == "" &&
				command.Tags == nil &&
				command.File.FileName == "coin.png"
		})).Return(apitype.NewImage(11, 1, "Denarius"), nil)
		collection.On("RecordImageAdded").Return(nil)
		sut := NewAddImageForm(remote, collection).WithCategory(coins)
		sut.Title = "Denarius"
		sut.Valuation = "12.50"
		sut.PurchaseUrl = "https://shop.example.com"
		sut.FilePath = pngFile(t)

		a.Nil(sut.Submit(ctx))
		collection.AssertExpectations(t)
		a.NotNil(sut.Preview())
		a.Equal(image.Rect(0, 0, 2, 2), sut.Preview().Bounds())
	})

	t.Run("Rejected file has no preview", func(t *testing.T) {
		a := require.New(t)
		sut := NewAddImageForm(&MockRemote{}, &MockCollection{}).WithCategory(coins)
		sut.Title = "Denarius"
		sut.filePreview.setPreview(image.NewRGBA(image.Rect(0, 0, 1, 1)))
		sut.FilePath = writeFile(t, "notes.txt", []byte("plain text notes"))

		a.NotNil(sut.Submit(ctx))
		a.Nil(sut.Preview())
	})

	t.Run("Server rejects", func(t *testing.T) {
		a := require.New(t)
		remoteMock := &MockRemote{}
		remoteMock.On("UploadImage", mock.Anything).Return(nil, &remote.Error{Kind: remote.KindStatus, StatusCode: 400})
		sut := NewAddImageForm(remoteMock, &MockCollection{}).WithCategory(coins)
		sut.Title = "Denarius"
		sut.FilePath = pngFile(t)

		a.NotNil(sut.Submit(ctx))
		a.Equal("The server rejected the upload. Please check file format and size.", sut.Message())
	})
}

func TestAddImageForm_GenerateFields(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies server fields", func(t *testing.T) {
		a := require.New(t)
		remote := &MockRemote{}
		remote.On("GenerateFields", &api.GenerateFieldsQuery{Title: "Denarius", Collection: "Coins", Wishlist: true}).
			Return(&apitype.AiFields{
				Description: "Roman silver coin",
				Valuation:   "120.00",
				Tags:        []string{"roman", "silver"},
				PurchaseUrl: "https://shop.example.com/denarius",
			}, nil)
		sut := NewAddImageForm(remote, &MockCollection{}).WithCategory(apitype.NewCategory(1, "Coins"))
		sut.Title = " Denarius "
		sut.Wishlist = true

		a.Nil(sut.GenerateFields(ctx))

		a.Equal("Roman silver coin", sut.Description)
		a.Equal("120.00", sut.Valuation)
		a.Equal([]string{"roman", "silver"}, sut.Tags.Payload())
		a.Equal("https://shop.example.com/denarius", sut.PurchaseUrl)
	})

	t.Run("Title is needed", func(t *testing.T) {
		a := require.New(t)
		remote := &MockRemote{}
		sut := NewAddImageForm(remote, &MockCollection{})

		a.ErrorIs(sut.GenerateFields(ctx), ErrValidation)
		remote.AssertNotCalled(t, "GenerateFields", mock.Anything)
	})

	t.Run("Failure keeps the fields", func(t *testing.T) {
		a := require.New(t)
		remote := &MockRemote{}
		remote.On("GenerateFields", mock.Anything).Return(nil, errors.New("500"))
		sut := NewAddImageForm(remote, &MockCollection{})
		sut.Title = "Denarius"
		sut.Description = "Mine"

		a.NotNil(sut.GenerateFields(ctx))
		a.Equal("Mine", sut.Description)
		a.Equal(generateFailedMessage, sut.Message())
	})
}

func TestEditImageDetailsForm(t *testing.T) {
	ctx := context.Background()

	t.Run("Tags untouched are not sent", func(t *testing.T) {
		a := require.New(t)
		target := &StubTarget{}
		sut := NewEditImageDetailsForm(apitype.NewImage(11, 1, "Denarius"), target)
		sut.Title = "Silver Denarius"

		a.Nil(sut.Submit(ctx))

		a.Equal("Silver Denarius", target.details.Title)
		a.False(target.details.SendTags)
	})
	t.Run("Existing tags are sent", func(t *testing.T) {
		a := require.New(t)
		target := &StubTarget{}
		sut := NewEditImageDetailsForm(apitype.NewImage(11, 1, "Denarius").WithTags("roman"), target)
		sut.Tags.Remove("roman")

		a.Nil(sut.Submit(ctx))

		a.True(target.details.SendTags)
		a.Empty(target.details.Tags)
	})
	t.Run("Purchase URL only for wishlist", func(t *testing.T) {
		a := require.New(t)
		target := &StubTarget{}
		sut := NewEditImageDetailsForm(apitype.NewImage(11, 1, "Denarius").WithWishlist(true, "https://shop.example.com"), target)

		a.Nil(sut.Submit(ctx))
		a.Equal("https://shop.example.com", target.details.PurchaseUrl)
	})
	t.Run("Empty title", func(t *testing.T) {
		a := require.New(t)
		target := &StubTarget{}
		sut := NewEditImageDetailsForm(apitype.NewImage(11, 1, "Denarius"), target)
		sut.Title = ""

		a.ErrorIs(sut.Submit(ctx), ErrValidation)
		a.Nil(target.details)
	})
	t.Run("Failure", func(t *testing.T) {
		a := require.New(t)
		target := &StubTarget{err: errors.New("500")}
		sut := NewEditImageDetailsForm(apitype.NewImage(11, 1, "Denarius"), target)

		a.NotNil(sut.Submit(ctx))
		a.Equal("Failed to update image details. Please try again.", sut.Message())
	})
}

func TestEditTagsForm(t *testing.T) {
	a := require.New(t)
	target := &StubTarget{}
	sut := NewEditTagsForm(3, tags.NewEditor("a", "b").WithEnabled(true), target)
	sut.Tags.Remove("a")

	a.Nil(sut.Submit(context.Background()))

	a.Equal(apitype.CategoryId(3), target.categoryId)
	a.Equal([]string{"b"}, target.tags)
}

func TestEditProfileForm(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts from user", func(t *testing.T) {
		a := require.New(t)
		target := &StubTarget{}
		user := apitype.NewUser(1, "me", "me@example.com").WithNames("Ada", "Lovelace", "ada").WithBio("Collector")
		sut := NewEditProfileForm(user, target)
		sut.DisplayName = " Ada L "

		a.Nil(sut.Submit(ctx))

		a.Equal(&api.UpdateProfileCommand{FirstName: "Ada", LastName: "Lovelace", DisplayName: "Ada L", Bio: "Collector"}, target.profile)
	})
	t.Run("Long bio", func(t *testing.T) {
		a := require.New(t)
		sut := NewEditProfileForm(nil, &StubTarget{})
		sut.Bio = string(bytes.Repeat([]byte("x"), 501))

		a.ErrorIs(sut.Submit(ctx), ErrValidation)
		a.Equal("Bio must not exceed 500 characters", sut.Message())
	})
	t.Run("Bad picture", func(t *testing.T) {
		a := require.New(t)
		target := &StubTarget{}
		sut := NewEditProfileForm(nil, target)
		sut.PicturePath = writeFile(t, "me.txt", []byte("not a picture"))

		a.NotNil(sut.Submit(ctx))
		a.Nil(target.profile)
	})
}

func TestSetGoalForm(t *testing.T) {
	ctx := context.Background()

	t.Run("Parses amounts", func(t *testing.T) {
		a := require.New(t)
		target := &StubTarget{}
		sut := NewSetGoalForm(target)
		sut.MonthlySpending = "$400.00"
		sut.Cushion = true
		sut.CushionAmount = "25"

		a.Nil(sut.Submit(ctx))

		a.Equal(&apitype.NewGoalRequest{MonthlySpending: 400, SpendingCushion: true, CushionAmount: 25}, target.goal)
	})
	t.Run("Cushion amount ignored when disabled", func(t *testing.T) {
		a := require.New(t)
		target := &StubTarget{}
		sut := NewSetGoalForm(target)
		sut.MonthlySpending = "400"
		sut.CushionAmount = "25"

		a.Nil(sut.Submit(ctx))
		a.Equal(0.0, target.goal.CushionAmount)
	})
	t.Run("Not a number", func(t *testing.T) {
		a := require.New(t)
		target := &StubTarget{}
		sut := NewSetGoalForm(target)
		sut.MonthlySpending = "lots"

		a.ErrorIs(sut.Submit(ctx), ErrValidation)
		a.Equal("Monthly spending must be a number", sut.Message())
		a.Nil(target.goal)
	})
	t.Run("Target failure message", func(t *testing.T) {
		a := require.New(t)
		target := &StubTarget{err: errors.New("invalid"), formError: "Monthly spending must be greater than zero"}
		sut := NewSetGoalForm(target)
		sut.MonthlySpending = "0"

		a.NotNil(sut.Submit(ctx))
		a.Equal("Monthly spending must be greater than zero", sut.Message())
	})
}
