package collection

import (
	"context"
	"errors"
	"sync"
	"time"

	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/logger"
)

const LoadErrorMessage = "Failed to load collections. Please try again later."

var ErrLoadFailed = errors.New(LoadErrorMessage)

// SnapshotStore keeps the last loaded categories between runs.
type SnapshotStore interface {
	SaveCategories(userId apitype.UserId, categories []*apitype.Category) error
	LoadCategories(userId apitype.UserId) ([]*apitype.Category, time.Time, error)
	Clear(userId apitype.UserId) error
}

// Service owns the category list, the image cache and the selection. Views
// read copies and report their mutations back with the Record* methods.
type Service struct {
	remote    api.CategoryRemote
	sender    api.Sender
	snapshots SnapshotStore

	mux          sync.Mutex
	userId       apitype.UserId
	categories   []*apitype.Category
	images       map[apitype.CategoryId][]*apitype.Image
	selectedName string
	selected     *apitype.Category
	loading      bool
	loaded       bool
	fromSnapshot bool
	lastError    error

	api.CollectionService
}

func NewService(remote api.CategoryRemote, sender api.Sender, snapshots SnapshotStore) *Service {
	return &Service{
		remote:    remote,
		sender:    sender,
		snapshots: snapshots,
		userId:    apitype.NoUser,
		images:    map[apitype.CategoryId][]*apitype.Image{},
	}
}

// SetUser sets whose snapshot is saved. If nothing has been loaded yet the
// user's previous snapshot is shown until the first load completes.
func (s *Service) SetUser(userId apitype.UserId) {
	s.mux.Lock()
	s.userId = userId
	alreadyLoaded := s.loaded
	s.mux.Unlock()

	if alreadyLoaded || userId == apitype.NoUser || s.snapshots == nil {
		return
	}

	categories, savedAt, err := s.snapshots.LoadCategories(userId)
	if err != nil {
		logger.Warn.Printf("Could not load category snapshot: %s", err)
		return
	}
	if len(categories) == 0 {
		return
	}

	s.mux.Lock()
	if s.loaded {
		s.mux.Unlock()
		return
	}
	logger.Debug.Printf("Showing snapshot of %d categories from %s", len(categories), savedAt)
	s.applyCategories(categories)
	s.fromSnapshot = true
	command := s.snapshotCommand()
	s.mux.Unlock()

	s.sender.SendCommandToTopic(api.CategoriesUpdated, command)
}

func (s *Service) LoadCategories(ctx context.Context) error {
	s.mux.Lock()
	s.loading = true
	s.mux.Unlock()

	categories, err := s.remote.FetchCategories(ctx)

	s.mux.Lock()
	s.loading = false
	if err != nil {
		s.lastError = ErrLoadFailed
		s.mux.Unlock()
		logger.Error.Printf("Loading categories failed: %s", err)
		s.sender.SendCommandToTopic(api.ShowError, &api.ErrorCommand{Message: LoadErrorMessage})
		return errors.Join(ErrLoadFailed, err)
	}

	s.lastError = nil
	s.loaded = true
	s.fromSnapshot = false
	s.applyCategories(categories)
	userId := s.userId
	saved := s.copyCategories()
	command := s.snapshotCommand()
	s.mux.Unlock()

	logger.Debug.Printf("Loaded %d categories, selected '%s'", len(categories), selectedNameOf(command))
	if s.snapshots != nil && userId != apitype.NoUser {
		if err := s.snapshots.SaveCategories(userId, saved); err != nil {
			logger.Warn.Printf("Could not save category snapshot: %s", err)
		}
	}

	s.sender.SendCommandToTopic(api.CategoriesUpdated, command)
	return nil
}

// applyCategories replaces the list, merges embedded images to the cache and
// reselects. Must be called with the lock held.
func (s *Service) applyCategories(categories []*apitype.Category) {
	s.categories = make([]*apitype.Category, 0, len(categories))
	for _, category := range categories {
		s.categories = append(s.categories, category.Copy())
		s.images[category.Id()] = copyImages(category.Images())
	}
	s.reselect()
}

// reselect keeps the selected name if it still exists, otherwise selects
// the first category or clears the selection.
func (s *Service) reselect() {
	if s.selectedName != "" {
		if category := s.findByName(s.selectedName); category != nil {
			s.selected = category
			return
		}
	}
	if len(s.categories) > 0 {
		s.selected = s.categories[0]
		s.selectedName = s.selected.Name()
	} else {
		s.selected = nil
		s.selectedName = ""
	}
}

func (s *Service) findByName(name string) *apitype.Category {
	for _, category := range s.categories {
		if category.Name() == name {
			return category
		}
	}
	return nil
}

// SelectCategory selects by name. Unknown names are ignored and false is
// returned.
func (s *Service) SelectCategory(name string) bool {
	s.mux.Lock()
	category := s.findByName(name)
	if category == nil {
		s.mux.Unlock()
		logger.Debug.Printf("No category '%s' to select", name)
		return false
	}
	s.selectedName = name
	s.selected = category
	command := s.snapshotCommand()
	s.mux.Unlock()

	s.sender.SendCommandToTopic(api.CategoriesUpdated, command)
	return true
}

// RecordCategoryDeleted removes the category right away without a refetch.
func (s *Service) RecordCategoryDeleted(id apitype.CategoryId) {
	s.mux.Lock()
	remaining := make([]*apitype.Category, 0, len(s.categories))
	for _, category := range s.categories {
		if category.Id() != id {
			remaining = append(remaining, category)
		}
	}
	s.categories = remaining
	delete(s.images, id)
	if s.selected != nil && s.selected.Id() == id {
		s.selectedName = ""
		s.selected = nil
	}
	s.reselect()
	command := s.snapshotCommand()
	s.mux.Unlock()

	logger.Debug.Printf("Category %d removed, selected '%s'", id, selectedNameOf(command))
	s.sender.SendCommandToTopic(api.CategoriesUpdated, command)
}

// RecordImagesDeleted removes the images from the selected category and then
// reconciles with the server.
func (s *Service) RecordImagesDeleted(ctx context.Context, ids []apitype.ImageId) error {
	deleted := map[apitype.ImageId]bool{}
	for _, id := range ids {
		deleted[id] = true
	}

	s.mux.Lock()
	if s.selected != nil {
		categoryId := s.selected.Id()
		s.images[categoryId] = filterImages(s.images[categoryId], func(image *apitype.Image) bool {
			return !deleted[image.Id()]
		})
		patched := s.selected.Copy().WithImages(filterImages(s.selected.Images(), func(image *apitype.Image) bool {
			return !deleted[image.Id()]
		})...)
		s.replaceCategory(patched)
	}
	command := s.snapshotCommand()
	s.mux.Unlock()

	s.sender.SendCommandToTopic(api.CategoriesUpdated, command)
	return s.LoadCategories(ctx)
}

// RecordTransferred moves the images from the wishlist to the collection and
// then reconciles with the server.
func (s *Service) RecordTransferred(ctx context.Context, ids []apitype.ImageId) error {
	transferred := map[apitype.ImageId]bool{}
	for _, id := range ids {
		transferred[id] = true
	}

	moveToCollection := func(images []*apitype.Image) []*apitype.Image {
		updated := make([]*apitype.Image, 0, len(images))
		for _, image := range images {
			if transferred[image.Id()] {
				image = image.Copy().WithWishlist(false, "")
			}
			updated = append(updated, image)
		}
		return updated
	}

	s.mux.Lock()
	for categoryId, images := range s.images {
		s.images[categoryId] = moveToCollection(images)
	}
	for _, category := range s.categories {
		s.replaceCategory(category.Copy().WithImages(moveToCollection(category.Images())...))
	}
	command := s.snapshotCommand()
	s.mux.Unlock()

	s.sender.SendCommandToTopic(api.CategoriesUpdated, command)
	return s.LoadCategories(ctx)
}

func (s *Service) RecordCategoryUpdated(ctx context.Context, id apitype.CategoryId) error {
	logger.Debug.Printf("Category %d updated", id)
	return s.LoadCategories(ctx)
}

func (s *Service) RecordCategoryAdded(ctx context.Context) error {
	return s.LoadCategories(ctx)
}

func (s *Service) RecordImageAdded(ctx context.Context) error {
	return s.LoadCategories(ctx)
}

func (s *Service) RecordImagesUpdated(ctx context.Context, ids []apitype.ImageId) error {
	logger.Debug.Printf("%d images updated", len(ids))
	return s.LoadCategories(ctx)
}

// Reset forgets everything, e.g. after logout.
func (s *Service) Reset() {
	s.mux.Lock()
	s.userId = apitype.NoUser
	s.categories = nil
	s.images = map[apitype.CategoryId][]*apitype.Image{}
	s.selectedName = ""
	s.selected = nil
	s.loading = false
	s.loaded = false
	s.fromSnapshot = false
	s.lastError = nil
	command := s.snapshotCommand()
	s.mux.Unlock()

	s.sender.SendCommandToTopic(api.CategoriesUpdated, command)
}

// replaceCategory swaps the category with the same id in the list and the
// selection. Must be called with the lock held.
func (s *Service) replaceCategory(category *apitype.Category) {
	for i, existing := range s.categories {
		if existing.Id() == category.Id() {
			s.categories[i] = category
		}
	}
	if s.selected != nil && s.selected.Id() == category.Id() {
		s.selected = category
	}
}

func (s *Service) Categories() []*apitype.Category {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.copyCategories()
}

func (s *Service) copyCategories() []*apitype.Category {
	categories := make([]*apitype.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, category.Copy())
	}
	return categories
}

func (s *Service) Selected() *apitype.Category {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.selected.Copy()
}

func (s *Service) SelectedName() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.selectedName
}

// Images returns the cached images of a category.
func (s *Service) Images(id apitype.CategoryId) []*apitype.Image {
	s.mux.Lock()
	defer s.mux.Unlock()
	return copyImages(s.images[id])
}

// SelectedImages returns the cached images of the selected category.
func (s *Service) SelectedImages() []*apitype.Image {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.selected == nil {
		return []*apitype.Image{}
	}
	return copyImages(s.images[s.selected.Id()])
}

func (s *Service) IsLoading() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.loading
}

// IsSnapshot tells if the shown state comes from the stored snapshot and
// has not been refreshed yet.
func (s *Service) IsSnapshot() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.fromSnapshot
}

// LastError returns the error of the latest failed load. A successful load
// clears it.
func (s *Service) LastError() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.lastError
}

// snapshotCommand builds the update sent to listeners. Must be called with
// the lock held.
func (s *Service) snapshotCommand() *api.UpdateCategoriesCommand {
	command := &api.UpdateCategoriesCommand{
		Categories: s.copyCategories(),
		Selected:   s.selected.Copy(),
		Images:     []*apitype.Image{},
	}
	if s.selected != nil {
		command.Images = copyImages(s.images[s.selected.Id()])
	}
	return command
}

func selectedNameOf(command *api.UpdateCategoriesCommand) string {
	if command.Selected == nil {
		return ""
	}
	return command.Selected.Name()
}

func copyImages(images []*apitype.Image) []*apitype.Image {
	copied := make([]*apitype.Image, 0, len(images))
	for _, image := range images {
		copied = append(copied, image.Copy())
	}
	return copied
}

func filterImages(images []*apitype.Image, keep func(image *apitype.Image) bool) []*apitype.Image {
	filtered := make([]*apitype.Image, 0, len(images))
	for _, image := range images {
		if keep(image) {
			filtered = append(filtered, image)
		}
	}
	return filtered
}
