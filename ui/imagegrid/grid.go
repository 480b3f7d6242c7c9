package imagegrid

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/logger"
	"vincit.fi/collector/common/util"
	"vincit.fi/collector/ui/selection"
)

type ClickResult int

const (
	Ignored ClickResult = iota
	OpenDetail
	Toggled
)

const (
	deleteAction   = "delete"
	transferAction = "transfer"
	editAction     = "edit"

	DeleteFailedMessage   = "Failed to delete images. Please try again."
	TransferFailedMessage = "Failed to transfer items. Please try again."
	EditFailedMessage     = "Failed to update image details. Please try again."
)

var ErrNoSelection = errors.New("no images selected for this action")

// Grid is one partition of a category's images: the collection or the
// wishlist. Each grid has its own selection.
type Grid struct {
	remote      api.ImageRemote
	collection  api.CollectionService
	sender      api.Sender
	wishlist    bool
	storageBase string
	viewOnly    bool
	machine     *selection.Machine
	inFlight    *util.InFlight[string]

	mux   sync.Mutex
	items []*Item
}

func NewGrid(remote api.ImageRemote, collection api.CollectionService, sender api.Sender, wishlist bool, storageBase string) *Grid {
	return &Grid{
		remote:      remote,
		collection:  collection,
		sender:      sender,
		wishlist:    wishlist,
		storageBase: storageBase,
		machine:     selection.NewMachine(),
		inFlight:    util.NewInFlight[string](),
		items:       []*Item{},
	}
}

// WithViewOnly disables selection, e.g. for another user's collection.
func (s *Grid) WithViewOnly(viewOnly bool) *Grid {
	s.viewOnly = viewOnly
	return s
}

// SetImages replaces the shown images. The selection is cleared when the set
// of images changes.
func (s *Grid) SetImages(images []*apitype.Image, categories []*apitype.Category) {
	items := Partition(images, s.wishlist, categories, s.storageBase)
	s.mux.Lock()
	changed := !sameImages(s.items, items)
	s.items = items
	s.mux.Unlock()
	if changed {
		s.machine.Cancel()
	}
}

func sameImages(a []*Item, b []*Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Image.Id() != b[i].Image.Id() {
			return false
		}
	}
	return true
}

// Click opens the image unless images are being selected, in which case
// the image is checked or unchecked.
func (s *Grid) Click(id apitype.ImageId) ClickResult {
	if s.find(id) == nil {
		return Ignored
	}
	if s.viewOnly || !s.machine.IsArmed() {
		return OpenDetail
	}
	s.machine.Toggle(id)
	return Toggled
}

// BeginSelection is the explicit "select images" action.
func (s *Grid) BeginSelection() {
	if !s.viewOnly {
		s.machine.Begin()
	}
}

// Toggle checks an image directly, as a checkbox does.
func (s *Grid) Toggle(id apitype.ImageId) bool {
	if s.viewOnly || s.find(id) == nil {
		return false
	}
	s.machine.Toggle(id)
	return true
}

func (s *Grid) CancelSelection() {
	s.machine.Cancel()
}

// DeleteSelected deletes the checked images. They are removed from the grid
// right away and the collection is refreshed.
func (s *Grid) DeleteSelected(ctx context.Context) error {
	if !s.machine.CanBulkDelete() {
		return ErrNoSelection
	}
	if !s.inFlight.TryBegin(deleteAction) {
		return util.ErrInFlight
	}
	defer s.inFlight.End(deleteAction)
	defer s.machine.Settle()

	ids := s.machine.Selected()
	if err := s.remote.BulkDeleteImages(ctx, ids); err != nil {
		logger.Error.Printf("Deleting %d images failed: %s", len(ids), err)
		s.sender.SendCommandToTopic(api.ShowNotice, &api.NoticeCommand{Message: DeleteFailedMessage})
		return err
	}

	s.removeItems(ids)
	return s.collection.RecordImagesDeleted(ctx, ids)
}

// TransferSelected moves the checked wishlist items to the collection. The
// items are transferred concurrently and the collection is refreshed once.
func (s *Grid) TransferSelected(ctx context.Context) error {
	if !s.wishlist || !s.machine.CanTransfer() {
		return ErrNoSelection
	}
	if !s.inFlight.TryBegin(transferAction) {
		return util.ErrInFlight
	}
	defer s.inFlight.End(transferAction)
	defer s.machine.Settle()

	ids := s.machine.Selected()
	transferred := make([]bool, len(ids))
	var group errgroup.Group
	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			if _, err := s.remote.TransferToCollection(ctx, id); err != nil {
				return err
			}
			transferred[i] = true
			return nil
		})
	}
	err := group.Wait()

	done := make([]apitype.ImageId, 0, len(ids))
	for i, id := range ids {
		if transferred[i] {
			done = append(done, id)
		}
	}
	s.removeItems(done)

	if err != nil {
		logger.Error.Printf("Transferred %d of %d items: %s", len(done), len(ids), err)
		s.sender.SendCommandToTopic(api.ShowNotice, &api.NoticeCommand{Message: TransferFailedMessage})
		if len(done) > 0 {
			if recordErr := s.collection.RecordTransferred(ctx, done); recordErr != nil {
				logger.Warn.Printf("Refreshing after a partial transfer failed: %s", recordErr)
			}
		}
		return err
	}
	return s.collection.RecordTransferred(ctx, done)
}

// EditSelected saves new details for the only checked image.
func (s *Grid) EditSelected(ctx context.Context, command *api.UpdateImageDetailsCommand) error {
	if !s.machine.CanEdit() {
		return ErrNoSelection
	}
	if !s.inFlight.TryBegin(editAction) {
		return util.ErrInFlight
	}
	defer s.inFlight.End(editAction)

	id := s.machine.Selected()[0]
	if _, err := s.remote.UpdateImageDetails(ctx, id, command); err != nil {
		logger.Error.Printf("Updating image %d failed: %s", id, err)
		s.sender.SendCommandToTopic(api.ShowError, &api.ErrorCommand{Message: EditFailedMessage})
		return err
	}
	s.machine.Settle()
	return s.collection.RecordImagesUpdated(ctx, []apitype.ImageId{id})
}

func (s *Grid) removeItems(ids []apitype.ImageId) {
	removed := util.NewSet(ids...)
	s.mux.Lock()
	defer s.mux.Unlock()
	kept := make([]*Item, 0, len(s.items))
	for _, item := range s.items {
		if !removed.Contains(item.Image.Id()) {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

func (s *Grid) find(id apitype.ImageId) *Item {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, item := range s.items {
		if item.Image.Id() == id {
			return item
		}
	}
	return nil
}

// Item returns the shown image with the id or nil.
func (s *Grid) Item(id apitype.ImageId) *Item {
	item := s.find(id)
	if item == nil {
		return nil
	}
	copied := *item
	copied.Image = item.Image.Copy()
	return &copied
}

func (s *Grid) Items() []*Item {
	s.mux.Lock()
	defer s.mux.Unlock()
	items := make([]*Item, 0, len(s.items))
	for _, item := range s.items {
		copied := *item
		copied.Image = item.Image.Copy()
		items = append(items, &copied)
	}
	return items
}

func (s *Grid) Selection() *selection.Machine {
	return s.machine
}

func (s *Grid) IsWishlist() bool {
	return s.wishlist
}

// EmptyMessage is shown when the grid has no images.
func (s *Grid) EmptyMessage() string {
	if s.viewOnly {
		return "No images in this collection."
	}
	if s.wishlist {
		return "No wishlist items in this collection yet."
	}
	return "No images in this collection yet. Add your first image!"
}
