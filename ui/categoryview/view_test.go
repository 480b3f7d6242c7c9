package categoryview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/backend/collection"
	"vincit.fi/collector/common/util"
	"vincit.fi/collector/ui/tags"
)

const storageBase = "https://bucket.example.com"

type MockSender struct {
	api.Sender
	mock.Mock
}

func (s *MockSender) SendToTopic(topic api.Topic) {
	s.Called(topic)
}

func (s *MockSender) SendCommandToTopic(topic api.Topic, command apitype.Command) {
	s.Called(topic, command)
}

func (s *MockSender) SendError(message string, err error) {
}

type MockCategoryRemote struct {
	api.CategoryRemote
	mock.Mock
}

func (s *MockCategoryRemote) FetchCategories(ctx context.Context) ([]*apitype.Category, error) {
	args := s.Called()
	categories, _ := args.Get(0).([]*apitype.Category)
	return categories, args.Error(1)
}

func (s *MockCategoryRemote) DeleteCategory(ctx context.Context, id apitype.CategoryId) error {
	return s.Called(id).Error(0)
}

func (s *MockCategoryRemote) ToggleCategoryVisibility(ctx context.Context, id apitype.CategoryId) (*apitype.Category, error) {
	args := s.Called(id)
	category, _ := args.Get(0).(*apitype.Category)
	return category, args.Error(1)
}

func (s *MockCategoryRemote) UpdateCategoryTags(ctx context.Context, id apitype.CategoryId, tags []string) (*apitype.Category, error) {
	args := s.Called(id, tags)
	category, _ := args.Get(0).(*apitype.Category)
	return category, args.Error(1)
}

func setup(t *testing.T) (*View, *MockCategoryRemote, *MockSender, *collection.Service) {
	remote := &MockCategoryRemote{}
	sender := &MockSender{}
	sender.On("SendCommandToTopic", mock.Anything, mock.Anything).Maybe()
	remote.On("FetchCategories").Return([]*apitype.Category{
		apitype.NewCategory(1, "Coins").
			WithTags("rare", "silver", "roman", "ancient").
			WithImages(apitype.NewImage(11, 1, "Denarius")),
		apitype.NewCategory(2, "Stamps").
			WithVisibility(false).
			WithPlaceholder("placeholders/stamps.png", ""),
	}, nil).Once()
	service := collection.NewService(remote, sender, nil)
	require.Nil(t, service.LoadCategories(context.Background()))
	return NewView(remote, service, sender, storageBase), remote, sender, service
}

func TestView_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Selected category moves to next", func(t *testing.T) {
		a := require.New(t)
		sut, remote, _, service := setup(t)
		remote.On("DeleteCategory", apitype.CategoryId(1)).Return(nil)
		a.Equal("Coins", service.SelectedName())

		a.Nil(sut.Delete(ctx, 1))

		a.Equal("Stamps", service.SelectedName())
		a.Len(service.Categories(), 1)
		a.Equal(apitype.CategoryId(2), service.Categories()[0].Id())
		remote.AssertNumberOfCalls(t, "FetchCategories", 1)
	})
	t.Run("Failure shows notice and keeps list", func(t *testing.T) {
		a := require.New(t)
		sut, remote, sender, service := setup(t)
		remote.On("DeleteCategory", apitype.CategoryId(1)).Return(errors.New("500"))

		a.NotNil(sut.Delete(ctx, 1))

		a.Len(service.Categories(), 2)
		a.Equal("Coins", service.SelectedName())
		sender.AssertCalled(t, "SendCommandToTopic", api.ShowNotice, &api.NoticeCommand{Message: DeleteFailedMessage})
	})
	t.Run("Second delete while pending", func(t *testing.T) {
		a := assert.New(t)
		sut, _, _, _ := setup(t)
		sut.inFlight.TryBegin(1)

		a.ErrorIs(sut.Delete(ctx, 1), util.ErrInFlight)
		a.ErrorIs(sut.ToggleVisibility(ctx, 1), util.ErrInFlight)
	})
}

func TestView_ConfirmDelete(t *testing.T) {
	a := require.New(t)
	sut, _, _, _ := setup(t)

	withImages, err := sut.ConfirmDelete(1)
	a.Nil(err)
	a.Equal("This will permanently delete \"Coins\" and all 1 images within it. This action cannot be undone.", withImages.Message)

	empty, err := sut.ConfirmDelete(2)
	a.Nil(err)
	a.Equal("This will permanently delete the \"Stamps\" collection. This action cannot be undone.", empty.Message)

	_, err = sut.ConfirmDelete(3)
	a.NotNil(err)
}

func TestView_ToggleVisibility(t *testing.T) {
	ctx := context.Background()

	t.Run("Refetches", func(t *testing.T) {
		a := require.New(t)
		sut, remote, _, service := setup(t)
		remote.On("ToggleCategoryVisibility", apitype.CategoryId(2)).Return(apitype.NewCategory(2, "Stamps"), nil)
		remote.On("FetchCategories").Return([]*apitype.Category{
			apitype.NewCategory(1, "Coins"),
			apitype.NewCategory(2, "Stamps"),
		}, nil).Once()

		a.Nil(sut.ToggleVisibility(ctx, 2))

		a.True(service.Categories()[1].IsPublic())
	})
	t.Run("Failure", func(t *testing.T) {
		a := require.New(t)
		sut, remote, sender, _ := setup(t)
		remote.On("ToggleCategoryVisibility", apitype.CategoryId(2)).Return(nil, errors.New("403"))

		a.NotNil(sut.ToggleVisibility(ctx, 2))

		remote.AssertNumberOfCalls(t, "FetchCategories", 1)
		sender.AssertCalled(t, "SendCommandToTopic", api.ShowNotice, &api.NoticeCommand{Message: VisibilityFailedMessage})
	})
}

func TestView_EditTags(t *testing.T) {
	ctx := context.Background()
	a := require.New(t)
	sut, remote, _, service := setup(t)

	editor := sut.TagEditor(1)
	a.Equal([]string{"rare", "silver", "roman", "ancient"}, editor.Tags())
	editor.Remove("roman")
	a.ErrorIs(editor.Add("rare"), tags.ErrDuplicate)

	remote.On("UpdateCategoryTags", apitype.CategoryId(1), []string{"rare", "silver", "ancient"}).
		Return(apitype.NewCategory(1, "Coins"), nil)
	remote.On("FetchCategories").Return([]*apitype.Category{
		apitype.NewCategory(1, "Coins").WithTags("ancient", "rare", "silver"),
	}, nil).Once()

	a.Nil(sut.EditTags(ctx, 1, editor))

	a.Equal([]string{"ancient", "rare", "silver"}, service.Categories()[0].Tags())
}

func TestView_Options(t *testing.T) {
	a := assert.New(t)
	sut, _, _, _ := setup(t)

	sut.OpenOptions(1)
	a.Equal(apitype.CategoryId(1), sut.OptionsOpenFor())

	sut.OpenOptions(2)
	a.Equal(apitype.CategoryId(2), sut.OptionsOpenFor())

	sut.OpenOptions(2)
	a.Equal(apitype.NoCategory, sut.OptionsOpenFor())

	sut.OpenOptions(1)
	sut.OutsideClick()
	a.Equal(apitype.NoCategory, sut.OptionsOpenFor())

	sut.WithViewOnly(true).OpenOptions(1)
	a.Equal(apitype.NoCategory, sut.OptionsOpenFor())
}

func TestView_Tiles(t *testing.T) {
	a := require.New(t)
	sut, _, _, _ := setup(t)
	sut.OpenOptions(2)

	tiles := sut.Tiles()

	a.Len(tiles, 2)
	a.Equal([]string{"rare", "silver", "roman"}, tiles[0].Tags)
	a.Equal("+1", tiles[0].MoreTags)
	a.True(tiles[0].Selected)
	a.Equal("/api/placeholder/300/200", tiles[0].ImageUrl)
	a.Equal("Make Private", tiles[0].VisibilityLabel)

	a.Equal("https://bucket.example.com/placeholders/stamps.png", tiles[1].ImageUrl)
	a.Equal("", tiles[1].MoreTags)
	a.True(tiles[1].OptionsOpen)
	a.Equal("Make Public", tiles[1].VisibilityLabel)
}
