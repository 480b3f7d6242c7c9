package apitype

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Copy(t *testing.T) {
	a := assert.New(t)

	original := NewCategory(1, "Coins").
		WithTags("old", "silver").
		WithImages(NewImage(10, 1, "Denarius"))
	copied := original.Copy()

	copied.tags[0] = "changed"
	copied.images = nil

	a.Equal([]string{"old", "silver"}, original.Tags())
	a.Equal(1, original.ImageCount())
	a.Equal("Coins", copied.Name())
	a.Nil((*Category)(nil).Copy())
}

func TestImage_WithWishlist(t *testing.T) {
	t.Run("Purchase URL kept for wishlist", func(t *testing.T) {
		a := assert.New(t)
		image := NewImage(1, 2, "Lens").WithWishlist(true, "https://shop.example.com/lens")
		a.True(image.IsWishlist())
		a.Equal("https://shop.example.com/lens", image.PurchaseUrl())
	})
	t.Run("Purchase URL dropped otherwise", func(t *testing.T) {
		a := assert.New(t)
		image := NewImage(1, 2, "Lens").WithWishlist(false, "https://shop.example.com/lens")
		a.False(image.IsWishlist())
		a.Equal("", image.PurchaseUrl())
	})
}

func TestUser_Label(t *testing.T) {
	a := assert.New(t)

	a.Equal("Collector", NewUser(1, "jd", "jd@example.com").WithNames("John", "Doe", "Collector").Label())
	a.Equal("John Doe", NewUser(1, "jd", "jd@example.com").WithNames("John", "Doe", "").Label())
	a.Equal("jd.mail", NewUser(1, "jd", "jd.mail@example.com").Label())
	a.Equal("jd", NewUser(1, "jd", "").Label())
}

func TestGoal_CushionLine(t *testing.T) {
	a := assert.New(t)

	line, ok := NewGoal(1, 400, true, 25, time.Now()).CushionLine()
	a.True(ok)
	a.Equal(425.0, line)

	_, ok = NewGoal(2, 400, false, 25, time.Now()).CushionLine()
	a.False(ok)
}

func TestParseIds(t *testing.T) {
	a := assert.New(t)

	userId, err := ParseUserId("7")
	a.Nil(err)
	a.Equal(UserId(7), userId)

	_, err = ParseUserId("seven")
	a.NotNil(err)

	categoryId, err := ParseCategoryId("12")
	a.Nil(err)
	a.Equal("12", categoryId.String())

	imageId, err := ParseImageId("3")
	a.Nil(err)
	a.Equal(ImageId(3), imageId)
}

func TestAuthStatus(t *testing.T) {
	a := assert.New(t)

	a.True(NewAuthenticated(NewUser(1, "a", "a@example.com")).IsAuthenticated())
	a.False(NewAuthenticated(nil).IsAuthenticated())
	a.False(NewUnauthenticated().IsAuthenticated())
}

func TestUser_WithFollowToggled(t *testing.T) {
	t.Run("Follow increments", func(t *testing.T) {
		a := assert.New(t)
		user := NewUser(7, "alice", "alice@example.com").WithFollowCounts(3, 1)

		followed := user.WithFollowToggled(true)

		a.True(followed.IsFollowing())
		a.Equal(4, followed.FollowerCount())
		a.False(user.IsFollowing())
		a.Equal(3, user.FollowerCount())
	})
	t.Run("Unfollow decrements", func(t *testing.T) {
		a := assert.New(t)
		user := NewUser(7, "alice", "alice@example.com").WithFollowCounts(4, 1).WithFollowing(true)

		unfollowed := user.WithFollowToggled(false)

		a.False(unfollowed.IsFollowing())
		a.Equal(3, unfollowed.FollowerCount())
	})
	t.Run("Count never below zero", func(t *testing.T) {
		a := assert.New(t)
		user := NewUser(7, "alice", "alice@example.com").WithFollowing(true)

		a.Equal(0, user.WithFollowToggled(false).FollowerCount())
	})
	t.Run("Same state is a no-op", func(t *testing.T) {
		a := assert.New(t)
		user := NewUser(7, "alice", "alice@example.com").WithFollowCounts(2, 0).WithFollowing(true)

		a.Equal(2, user.WithFollowToggled(true).FollowerCount())
	})
}
