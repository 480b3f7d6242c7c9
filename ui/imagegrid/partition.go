package imagegrid

import (
	"strings"

	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/constants"
)

// Item is an image ready to be shown.
type Item struct {
	Image        *apitype.Image
	Url          string
	CategoryName string
}

// Partition keeps the images whose wishlist flag matches and resolves their
// URLs and category names.
func Partition(images []*apitype.Image, wishlist bool, categories []*apitype.Category, storageBase string) []*Item {
	names := map[apitype.CategoryId]string{}
	for _, category := range categories {
		names[category.Id()] = category.Name()
	}

	items := make([]*Item, 0, len(images))
	for _, image := range images {
		if image.IsWishlist() != wishlist {
			continue
		}
		name, ok := names[image.CategoryId()]
		if !ok {
			name = constants.UnknownCategoryName
		}
		items = append(items, &Item{
			Image:        image.Copy(),
			Url:          ResolveUrl(image.PresignedUrl(), image.Path(), storageBase),
			CategoryName: name,
		})
	}
	return items
}

// ResolveUrl prefers the presigned URL. A stored path is joined to the
// storage base unless it already is absolute. Returns "" when there is
// nothing to show.
func ResolveUrl(presignedUrl string, path string, storageBase string) string {
	if presignedUrl != "" {
		return presignedUrl
	}
	if path == "" {
		return ""
	}
	if IsAbsoluteUrl(path) {
		return path
	}
	return strings.TrimRight(storageBase, "/") + "/" + strings.TrimLeft(path, "/")
}

func IsAbsoluteUrl(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}
