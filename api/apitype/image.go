package apitype

import "fmt"

type Image struct {
	id           ImageId
	categoryId   CategoryId
	title        string
	description  string
	valuation    string
	tags         []string
	wishlist     bool
	purchaseUrl  string
	path         string
	presignedUrl string
}

func NewImage(id ImageId, categoryId CategoryId, title string) *Image {
	return &Image{
		id:         id,
		categoryId: categoryId,
		title:      title,
		tags:       []string{},
	}
}

func (s *Image) WithDescription(description string) *Image {
	s.description = description
	return s
}

// WithValuation sets the valuation as the decimal string the server uses,
// e.g. "12.50". An empty value means no valuation.
func (s *Image) WithValuation(valuation string) *Image {
	s.valuation = valuation
	return s
}

func (s *Image) WithTags(tags ...string) *Image {
	s.tags = append([]string{}, tags...)
	return s
}

// WithWishlist marks the image as a wishlist item. The purchase URL is only
// kept for wishlist items.
func (s *Image) WithWishlist(wishlist bool, purchaseUrl string) *Image {
	s.wishlist = wishlist
	if wishlist {
		s.purchaseUrl = purchaseUrl
	} else {
		s.purchaseUrl = ""
	}
	return s
}

func (s *Image) WithStorage(path string, presignedUrl string) *Image {
	s.path = path
	s.presignedUrl = presignedUrl
	return s
}

func (s *Image) Id() ImageId {
	return s.id
}

func (s *Image) CategoryId() CategoryId {
	return s.categoryId
}

func (s *Image) Title() string {
	return s.title
}

func (s *Image) Description() string {
	return s.description
}

func (s *Image) Valuation() string {
	return s.valuation
}

func (s *Image) Tags() []string {
	return append([]string{}, s.tags...)
}

func (s *Image) IsWishlist() bool {
	return s.wishlist
}

func (s *Image) PurchaseUrl() string {
	return s.purchaseUrl
}

func (s *Image) Path() string {
	return s.path
}

func (s *Image) PresignedUrl() string {
	return s.presignedUrl
}

func (s *Image) Copy() *Image {
	if s == nil {
		return nil
	}
	copied := *s
	copied.tags = s.Tags()
	return &copied
}

func (s *Image) String() string {
	return fmt.Sprintf("Image{%d:%s}", s.id, s.title)
}
