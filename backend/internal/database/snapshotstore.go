package database

import (
	"encoding/json"
	"time"

	"github.com/upper/db/v4"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/logger"
)

// SnapshotStore keeps the last successfully loaded categories of each user
// so they can be shown before the first refresh completes.
type SnapshotStore struct {
	database    *Database
	statusStore *StatusStore
}

func NewSnapshotStore(database *Database, statusStore *StatusStore) *SnapshotStore {
	return &SnapshotStore{
		database:    database,
		statusStore: statusStore,
	}
}

func snapshotStatusKey(userId apitype.UserId) StatusKey {
	return StatusKey("categories_snapshot_" + userId.String())
}

func (s *SnapshotStore) SaveCategories(userId apitype.UserId, categories []*apitype.Category) error {
	err := s.database.Session().Tx(func(sess db.Session) error {
		if err := deleteSnapshot(sess, userId); err != nil {
			return err
		}

		categoryCollection := sess.Collection("category_snapshot")
		imageCollection := sess.Collection("image_snapshot")
		for i, category := range categories {
			if _, err := categoryCollection.Insert(toCategorySnapshot(userId, i, category)); err != nil {
				return err
			}
			for j, image := range category.Images() {
				if _, err := imageCollection.Insert(toImageSnapshot(userId, j, category.Id(), image)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Debug.Printf("Stored snapshot of %d categories for user %d", len(categories), userId)
	return s.statusStore.UpdateTimestamp(snapshotStatusKey(userId), time.Now())
}

// LoadCategories returns the snapshot and when it was saved. An empty slice
// is returned if there is no snapshot.
func (s *SnapshotStore) LoadCategories(userId apitype.UserId) ([]*apitype.Category, time.Time, error) {
	session := s.database.Session()

	var categoryRows []CategorySnapshot
	if err := session.Collection("category_snapshot").
		Find(db.Cond{"user_id": int64(userId)}).
		OrderBy("position").
		All(&categoryRows); err != nil {
		return nil, time.Time{}, err
	}

	var imageRows []ImageSnapshot
	if err := session.Collection("image_snapshot").
		Find(db.Cond{"user_id": int64(userId)}).
		OrderBy("category_id", "position").
		All(&imageRows); err != nil {
		return nil, time.Time{}, err
	}

	imagesByCategory := map[int64][]*apitype.Image{}
	for i := range imageRows {
		row := &imageRows[i]
		imagesByCategory[row.CategoryId] = append(imagesByCategory[row.CategoryId], toApiImage(row))
	}

	categories := make([]*apitype.Category, 0, len(categoryRows))
	for i := range categoryRows {
		row := &categoryRows[i]
		categories = append(categories, toApiCategory(row, imagesByCategory[row.CategoryId]))
	}

	var savedAt time.Time
	if status, err := s.statusStore.GetStatus(snapshotStatusKey(userId)); err == nil {
		savedAt = status.Timestamp
	}
	return categories, savedAt, nil
}

func (s *SnapshotStore) Clear(userId apitype.UserId) error {
	return s.database.Session().Tx(func(sess db.Session) error {
		return deleteSnapshot(sess, userId)
	})
}

func deleteSnapshot(sess db.Session, userId apitype.UserId) error {
	if err := sess.Collection("image_snapshot").Find(db.Cond{"user_id": int64(userId)}).Delete(); err != nil {
		return err
	}
	return sess.Collection("category_snapshot").Find(db.Cond{"user_id": int64(userId)}).Delete()
}

func toCategorySnapshot(userId apitype.UserId, position int, category *apitype.Category) CategorySnapshot {
	return CategorySnapshot{
		UserId:                  int64(userId),
		CategoryId:              int64(category.Id()),
		Position:                position,
		Name:                    category.Name(),
		IsPublic:                category.IsPublic(),
		PlaceholderImage:        category.PlaceholderImage(),
		PlaceholderPresignedUrl: category.PlaceholderPresignedUrl(),
		Tags:                    tagsToJson(category.Tags()),
	}
}

func toImageSnapshot(userId apitype.UserId, position int, categoryId apitype.CategoryId, image *apitype.Image) ImageSnapshot {
	return ImageSnapshot{
		UserId:       int64(userId),
		ImageId:      int64(image.Id()),
		CategoryId:   int64(categoryId),
		Position:     position,
		Title:        image.Title(),
		Description:  image.Description(),
		Valuation:    image.Valuation(),
		Tags:         tagsToJson(image.Tags()),
		IsWishlist:   image.IsWishlist(),
		PurchaseUrl:  image.PurchaseUrl(),
		Path:         image.Path(),
		PresignedUrl: image.PresignedUrl(),
	}
}

func toApiCategory(row *CategorySnapshot, images []*apitype.Image) *apitype.Category {
	return apitype.NewCategory(apitype.CategoryId(row.CategoryId), row.Name).
		WithVisibility(row.IsPublic).
		WithPlaceholder(row.PlaceholderImage, row.PlaceholderPresignedUrl).
		WithTags(tagsFromJson(row.Tags)...).
		WithImages(images...)
}

func toApiImage(row *ImageSnapshot) *apitype.Image {
	return apitype.NewImage(apitype.ImageId(row.ImageId), apitype.CategoryId(row.CategoryId), row.Title).
		WithDescription(row.Description).
		WithValuation(row.Valuation).
		WithTags(tagsFromJson(row.Tags)...).
		WithWishlist(row.IsWishlist, row.PurchaseUrl).
		WithStorage(row.Path, row.PresignedUrl)
}

func tagsToJson(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func tagsFromJson(value string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(value), &tags); err != nil {
		logger.Warn.Printf("Invalid stored tags '%s'", value)
		return nil
	}
	return tags
}
