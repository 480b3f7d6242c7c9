package categoryview

import (
	"context"
	"fmt"
	"sync"

	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/constants"
	"vincit.fi/collector/common/logger"
	"vincit.fi/collector/common/util"
	"vincit.fi/collector/ui/imagegrid"
	"vincit.fi/collector/ui/tags"
)

const (
	shownTags = 3

	DeleteFailedMessage     = "Failed to delete category. Please try again."
	VisibilityFailedMessage = "Failed to update collection visibility. Please try again."
	TagsFailedMessage       = "Failed to update tags. Please try again."
)

// Confirmation is asked from the user before a destructive action.
type Confirmation struct {
	Title   string
	Message string
	Confirm string
}

// Tile is one category as shown in the list.
type Tile struct {
	Id              apitype.CategoryId
	Name            string
	ImageUrl        string
	Tags            []string
	MoreTags        string
	Public          bool
	Selected        bool
	OptionsOpen     bool
	VisibilityLabel string
}

// View is the list of the user's categories. Every change goes through the
// collection service; the view only keeps the open options menu.
type View struct {
	remote      api.CategoryRemote
	collection  api.CollectionService
	sender      api.Sender
	storageBase string
	viewOnly    bool
	inFlight    *util.InFlight[apitype.CategoryId]

	mux         sync.Mutex
	optionsOpen apitype.CategoryId
}

func NewView(remote api.CategoryRemote, collection api.CollectionService, sender api.Sender, storageBase string) *View {
	return &View{
		remote:      remote,
		collection:  collection,
		sender:      sender,
		storageBase: storageBase,
		inFlight:    util.NewInFlight[apitype.CategoryId](),
		optionsOpen: apitype.NoCategory,
	}
}

func (s *View) WithViewOnly(viewOnly bool) *View {
	s.viewOnly = viewOnly
	return s
}

func (s *View) Select(name string) bool {
	return s.collection.SelectCategory(name)
}

// OpenOptions toggles the options menu of the category. Any other open menu
// is closed.
func (s *View) OpenOptions(id apitype.CategoryId) {
	if s.viewOnly {
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.optionsOpen == id {
		s.optionsOpen = apitype.NoCategory
	} else {
		s.optionsOpen = id
	}
}

func (s *View) OutsideClick() {
	s.closeOptions()
}

func (s *View) OptionsOpenFor() apitype.CategoryId {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.optionsOpen
}

func (s *View) closeOptions() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.optionsOpen = apitype.NoCategory
}

// ConfirmDelete returns the question asked before deleting the category.
func (s *View) ConfirmDelete(id apitype.CategoryId) (*Confirmation, error) {
	s.closeOptions()
	category := s.find(id)
	if category == nil {
		return nil, fmt.Errorf("no category %d", id)
	}
	message := fmt.Sprintf("This will permanently delete the \"%s\" collection. This action cannot be undone.", category.Name())
	if count := len(s.collection.Images(id)); count > 0 {
		message = fmt.Sprintf("This will permanently delete \"%s\" and all %d images within it. This action cannot be undone.", category.Name(), count)
	}
	return &Confirmation{Title: "Delete Collection?", Message: message, Confirm: "Delete"}, nil
}

// Delete deletes the category and removes it from the list without a
// refetch. On failure nothing changes.
func (s *View) Delete(ctx context.Context, id apitype.CategoryId) error {
	return s.guarded(id, func() error {
		if err := s.remote.DeleteCategory(ctx, id); err != nil {
			logger.Error.Printf("Deleting category %d failed: %s", id, err)
			s.sender.SendCommandToTopic(api.ShowNotice, &api.NoticeCommand{Message: DeleteFailedMessage})
			return err
		}
		s.collection.RecordCategoryDeleted(id)
		return nil
	})
}

func (s *View) ToggleVisibility(ctx context.Context, id apitype.CategoryId) error {
	s.closeOptions()
	return s.guarded(id, func() error {
		if _, err := s.remote.ToggleCategoryVisibility(ctx, id); err != nil {
			logger.Error.Printf("Toggling visibility of %d failed: %s", id, err)
			s.sender.SendCommandToTopic(api.ShowNotice, &api.NoticeCommand{Message: VisibilityFailedMessage})
			return err
		}
		return s.collection.RecordCategoryUpdated(ctx, id)
	})
}

// TagEditor returns an editor holding the current tags of the category.
func (s *View) TagEditor(id apitype.CategoryId) *tags.Editor {
	s.closeOptions()
	category := s.find(id)
	if category == nil {
		return tags.NewEditor().WithEnabled(true)
	}
	return tags.NewEditor(category.Tags()...).WithEnabled(true)
}

// EditTags saves the tags of the editor. The canonical list is refetched
// from the server.
func (s *View) EditTags(ctx context.Context, id apitype.CategoryId, editor *tags.Editor) error {
	return s.guarded(id, func() error {
		if _, err := s.remote.UpdateCategoryTags(ctx, id, editor.Tags()); err != nil {
			logger.Error.Printf("Updating tags of %d failed: %s", id, err)
			s.sender.SendCommandToTopic(api.ShowError, &api.ErrorCommand{Message: TagsFailedMessage})
			return err
		}
		return s.collection.RecordCategoryUpdated(ctx, id)
	})
}

func (s *View) guarded(id apitype.CategoryId, action func() error) error {
	if s.viewOnly {
		return fmt.Errorf("collections of other users cannot be changed")
	}
	if !s.inFlight.TryBegin(id) {
		return util.ErrInFlight
	}
	defer s.inFlight.End(id)
	return action()
}

func (s *View) find(id apitype.CategoryId) *apitype.Category {
	for _, category := range s.collection.Categories() {
		if category.Id() == id {
			return category
		}
	}
	return nil
}

// Tiles returns the categories as shown.
func (s *View) Tiles() []*Tile {
	selected := s.collection.SelectedName()
	optionsOpen := s.OptionsOpenFor()

	categories := s.collection.Categories()
	tiles := make([]*Tile, 0, len(categories))
	for _, category := range categories {
		tiles = append(tiles, s.tile(category, selected, optionsOpen))
	}
	return tiles
}

func (s *View) tile(category *apitype.Category, selected string, optionsOpen apitype.CategoryId) *Tile {
	allTags := category.Tags()
	tile := &Tile{
		Id:              category.Id(),
		Name:            category.Name(),
		ImageUrl:        PlaceholderUrl(category, s.storageBase),
		Tags:            allTags,
		Public:          category.IsPublic(),
		Selected:        category.Name() == selected,
		OptionsOpen:     category.Id() == optionsOpen,
		VisibilityLabel: "Make Public",
	}
	if len(allTags) > shownTags {
		tile.Tags = allTags[:shownTags]
		tile.MoreTags = fmt.Sprintf("+%d", len(allTags)-shownTags)
	}
	if category.IsPublic() {
		tile.VisibilityLabel = "Make Private"
	}
	return tile
}

// PlaceholderUrl resolves the category image. Categories without one get the
// generic placeholder.
func PlaceholderUrl(category *apitype.Category, storageBase string) string {
	url := imagegrid.ResolveUrl(category.PlaceholderPresignedUrl(), category.PlaceholderImage(), storageBase)
	if url == "" {
		return constants.PlaceholderImage
	}
	return url
}

func (s *View) EmptyMessage() string {
	if s.viewOnly {
		return "No collections available."
	}
	return "No collections available. Create your first collection!"
}
