package api

import "vincit.fi/collector/api/apitype"

type ErrorCommand struct {
	Message string
}

// NoticeCommand is a blocking, alert style message. The view must be
// acknowledged before the user continues.
type NoticeCommand struct {
	Message string
}

type UpdateCategoriesCommand struct {
	Categories []*apitype.Category
	Selected   *apitype.Category
	Images     []*apitype.Image
}

// SessionChangedCommand carries the current user. User is nil after logout
// or account deletion.
type SessionChangedCommand struct {
	User *apitype.User
}

// FileUpload is a binary file sent in a multipart body.
type FileUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

type CreateCategoryCommand struct {
	Name        string
	Public      bool
	Tags        []string
	Placeholder *FileUpload
}

type UploadImageCommand struct {
	Title       string
	CategoryId  apitype.CategoryId
	Description string
	Valuation   string
	Tags        []string
	Wishlist    bool
	PurchaseUrl string
	File        *FileUpload
}

// UpdateImageDetailsCommand replaces the editable fields of an image. Tags
// are only sent when SendTags is set.
type UpdateImageDetailsCommand struct {
	Title       string
	Description string
	Valuation   string
	Tags        []string
	SendTags    bool
	PurchaseUrl string
}

type UpdateProfileCommand struct {
	FirstName   string
	LastName    string
	DisplayName string
	Bio         string
	Picture     *FileUpload
}

type GenerateFieldsQuery struct {
	Title      string
	Collection string
	Wishlist   bool
}
