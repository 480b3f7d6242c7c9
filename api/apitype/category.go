package apitype

import "fmt"

type Category struct {
	id                      CategoryId
	name                    string
	public                  bool
	placeholderImage        string
	placeholderPresignedUrl string
	tags                    []string
	images                  []*Image
}

func NewCategory(id CategoryId, name string) *Category {
	return &Category{
		id:     id,
		name:   name,
		public: true,
		tags:   []string{},
		images: []*Image{},
	}
}

func (s *Category) WithVisibility(public bool) *Category {
	s.public = public
	return s
}

func (s *Category) WithPlaceholder(path string, presignedUrl string) *Category {
	s.placeholderImage = path
	s.placeholderPresignedUrl = presignedUrl
	return s
}

func (s *Category) WithTags(tags ...string) *Category {
	s.tags = append([]string{}, tags...)
	return s
}

func (s *Category) WithImages(images ...*Image) *Category {
	s.images = append([]*Image{}, images...)
	return s
}

func (s *Category) Id() CategoryId {
	return s.id
}

func (s *Category) Name() string {
	return s.name
}

func (s *Category) IsPublic() bool {
	return s.public
}

func (s *Category) PlaceholderImage() string {
	return s.placeholderImage
}

func (s *Category) PlaceholderPresignedUrl() string {
	return s.placeholderPresignedUrl
}

func (s *Category) Tags() []string {
	return append([]string{}, s.tags...)
}

// Images returns the images embedded in the category listing. They may be
// stale compared to the image cache of the collection service.
func (s *Category) Images() []*Image {
	return append([]*Image{}, s.images...)
}

func (s *Category) ImageCount() int {
	return len(s.images)
}

// Copy returns a copy that does not share slices with the original.
func (s *Category) Copy() *Category {
	if s == nil {
		return nil
	}
	return &Category{
		id:                      s.id,
		name:                    s.name,
		public:                  s.public,
		placeholderImage:        s.placeholderImage,
		placeholderPresignedUrl: s.placeholderPresignedUrl,
		tags:                    s.Tags(),
		images:                  s.Images(),
	}
}

func (s *Category) String() string {
	return fmt.Sprintf("Category{%d:%s}", s.id, s.name)
}
