package api

import (
	"context"

	"vincit.fi/collector/api/apitype"
)

// CollectionService is the shared view of the user's categories and images.
type CollectionService interface {
	LoadCategories(ctx context.Context) error
	SelectCategory(name string) bool
	SetUser(userId apitype.UserId)
	Reset()

	RecordCategoryAdded(ctx context.Context) error
	RecordCategoryDeleted(id apitype.CategoryId)
	RecordCategoryUpdated(ctx context.Context, id apitype.CategoryId) error
	RecordImageAdded(ctx context.Context) error
	RecordImagesDeleted(ctx context.Context, ids []apitype.ImageId) error
	RecordImagesUpdated(ctx context.Context, ids []apitype.ImageId) error
	RecordTransferred(ctx context.Context, ids []apitype.ImageId) error

	Categories() []*apitype.Category
	Selected() *apitype.Category
	SelectedName() string
	Images(id apitype.CategoryId) []*apitype.Image
	SelectedImages() []*apitype.Image
	IsLoading() bool
	IsSnapshot() bool
	LastError() error
}

type SessionListener func(user *apitype.User)

// LoginCallback delivers the ID token of an external sign in.
type LoginCallback <-chan string

// SessionService tracks who is logged in.
type SessionService interface {
	Current() *apitype.User
	IsLoading() bool
	IsAuthenticated() bool
	RequireUser() (*apitype.User, error)

	Verify(ctx context.Context) *apitype.User
	Login(ctx context.Context, idToken string) (*apitype.User, error)
	AwaitLogin(ctx context.Context, callback LoginCallback) (*apitype.User, error)
	Logout(ctx context.Context)
	DeleteAccount(ctx context.Context) error
	Subscribe(listener SessionListener) func()
}
