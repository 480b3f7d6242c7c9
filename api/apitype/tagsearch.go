package apitype

type TagResultType string

const (
	TagResultCategory TagResultType = "category"
	TagResultImage    TagResultType = "image"
)

type TagSearchResult struct {
	Type     TagResultType
	Id       int64
	Title    string
	ImageUrl string
	Owner    *User
	// Only set for images
	CategoryName string
}

// TypeLabel is the human readable kind of the result.
func (s *TagSearchResult) TypeLabel() string {
	if s.Type == TagResultCategory {
		return "Collection"
	}
	return "Image"
}
