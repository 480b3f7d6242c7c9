package api

import (
	"context"

	"vincit.fi/collector/api/apitype"
)

type CategoryRemote interface {
	FetchCategories(ctx context.Context) ([]*apitype.Category, error)
	FetchUserCategories(ctx context.Context, userId apitype.UserId, publicOnly bool) ([]*apitype.Category, error)
	CreateCategory(ctx context.Context, command *CreateCategoryCommand) (*apitype.Category, error)
	DeleteCategory(ctx context.Context, id apitype.CategoryId) error
	ToggleCategoryVisibility(ctx context.Context, id apitype.CategoryId) (*apitype.Category, error)
	UpdateCategoryTags(ctx context.Context, id apitype.CategoryId, tags []string) (*apitype.Category, error)
}

type ImageRemote interface {
	UploadImage(ctx context.Context, command *UploadImageCommand) (*apitype.Image, error)
	DeleteImage(ctx context.Context, id apitype.ImageId) error
	BulkDeleteImages(ctx context.Context, ids []apitype.ImageId) error
	UpdateImageDetails(ctx context.Context, id apitype.ImageId, command *UpdateImageDetailsCommand) (*apitype.Image, error)
	TransferToCollection(ctx context.Context, id apitype.ImageId) (*apitype.Image, error)
	GenerateFields(ctx context.Context, query *GenerateFieldsQuery) (*apitype.AiFields, error)
}

type ProfileRemote interface {
	GetProfile(ctx context.Context, id apitype.UserId) (*apitype.User, error)
	UpdateProfile(ctx context.Context, id apitype.UserId, command *UpdateProfileCommand) (*apitype.User, error)
	GetOwnStats(ctx context.Context) (*apitype.ProfileStats, error)
	GetUserStats(ctx context.Context, id apitype.UserId) (*apitype.ProfileStats, error)
	SearchUsers(ctx context.Context, query string) ([]*apitype.User, error)
}

// FollowRemote lists follow edges. apitype.NoUser means the current user.
type FollowRemote interface {
	GetFollowers(ctx context.Context, userId apitype.UserId) ([]*apitype.User, error)
	GetFollowing(ctx context.Context, userId apitype.UserId) ([]*apitype.User, error)
	Follow(ctx context.Context, userId apitype.UserId) error
	Unfollow(ctx context.Context, userId apitype.UserId) error
}

type TagRemote interface {
	SearchByTag(ctx context.Context, tag string) ([]*apitype.TagSearchResult, error)
}

type FinanceRemote interface {
	FetchFinancialSummary(ctx context.Context) (*apitype.FinancialSummary, error)
	GetGoals(ctx context.Context, userId apitype.UserId) ([]*apitype.Goal, error)
	SaveGoal(ctx context.Context, userId apitype.UserId, goal *apitype.NewGoalRequest) (*apitype.Goal, error)
}

type AuthRemote interface {
	CheckAuth(ctx context.Context) (*apitype.AuthStatus, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*apitype.User, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

type Remote interface {
	CategoryRemote
	ImageRemote
	ProfileRemote
	FollowRemote
	TagRemote
	FinanceRemote
	AuthRemote
}
