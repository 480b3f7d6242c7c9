package social

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/logger"
	"vincit.fi/collector/common/util"
)

const profileLoadErrorMessage = "Failed to load profile. Please try again later."

// ProfileRemote is what the profile view needs from the API client.
type ProfileRemote interface {
	api.ProfileRemote
	api.FollowRemote
	api.CategoryRemote
}

// Profile is the view of one user's profile, stats and collections. The
// collections of other users are limited to public ones.
type Profile struct {
	remote    ProfileRemote
	sender    api.Sender
	userId    apitype.UserId
	own       bool
	following *util.InFlight[apitype.UserId]

	mux          sync.Mutex
	state        ViewState
	message      string
	user         *apitype.User
	stats        *apitype.ProfileStats
	categories   []*apitype.Category
	selectedName string
}

func NewProfile(remote ProfileRemote, sender api.Sender, userId apitype.UserId, currentUserId apitype.UserId) *Profile {
	return &Profile{
		remote:     remote,
		sender:     sender,
		userId:     userId,
		own:        userId == currentUserId,
		following:  util.NewInFlight[apitype.UserId](),
		state:      Loading,
		categories: []*apitype.Category{},
	}
}

// Load fetches the profile, the stats and the collections concurrently. Any
// failure puts the view in the Error state.
func (s *Profile) Load(ctx context.Context) error {
	s.mux.Lock()
	s.state = Loading
	s.message = ""
	s.mux.Unlock()

	var user *apitype.User
	var stats *apitype.ProfileStats
	var categories []*apitype.Category

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		user, err = s.remote.GetProfile(groupCtx, s.userId)
		return
	})
	group.Go(func() (err error) {
		if s.own {
			stats, err = s.remote.GetOwnStats(groupCtx)
		} else {
			stats, err = s.remote.GetUserStats(groupCtx, s.userId)
		}
		return
	})
	group.Go(func() (err error) {
		categories, err = s.remote.FetchUserCategories(groupCtx, s.userId, !s.own)
		return
	})
	err := group.Wait()

	s.mux.Lock()
	defer s.mux.Unlock()
	if err != nil {
		logger.Error.Printf("Loading profile %d failed: %s", s.userId, err)
		s.state = Error
		s.message = profileLoadErrorMessage
		return err
	}

	s.user = user
	s.stats = stats
	s.categories = categories
	s.selectedName = ""
	if len(categories) > 0 {
		s.selectedName = categories[0].Name()
	}
	s.state = Populated
	return nil
}

// ToggleFollow follows or unfollows the profile's user. The follower count is
// adjusted locally without a refetch.
func (s *Profile) ToggleFollow(ctx context.Context) error {
	s.mux.Lock()
	user := s.user
	s.mux.Unlock()
	if user == nil || s.own {
		return nil
	}
	if !s.following.TryBegin(s.userId) {
		return util.ErrInFlight
	}
	defer s.following.End(s.userId)

	following := user.IsFollowing()
	var err error
	if following {
		err = s.remote.Unfollow(ctx, s.userId)
	} else {
		err = s.remote.Follow(ctx, s.userId)
	}
	if err != nil {
		s.sender.SendError("Failed to update follow status.", err)
		return err
	}

	s.mux.Lock()
	s.user = s.user.WithFollowToggled(!following)
	s.mux.Unlock()
	return nil
}

// Update saves the own profile and replaces the shown user with the server's
// answer.
func (s *Profile) Update(ctx context.Context, command *api.UpdateProfileCommand) error {
	updated, err := s.remote.UpdateProfile(ctx, s.userId, command)
	if err != nil {
		return err
	}
	s.mux.Lock()
	s.user = updated
	s.mux.Unlock()
	return nil
}

// SelectCategory shows another collection of the profile. Unknown names are
// ignored.
func (s *Profile) SelectCategory(name string) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, category := range s.categories {
		if category.Name() == name {
			s.selectedName = name
			return true
		}
	}
	return false
}

func (s *Profile) SelectedCategory() *apitype.Category {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, category := range s.categories {
		if category.Name() == s.selectedName {
			return category.Copy()
		}
	}
	return nil
}

func (s *Profile) IsOwn() bool {
	return s.own
}

func (s *Profile) UserId() apitype.UserId {
	return s.userId
}

func (s *Profile) State() ViewState {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.state
}

func (s *Profile) Message() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.message
}

func (s *Profile) User() *apitype.User {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.user.Copy()
}

func (s *Profile) Stats() apitype.ProfileStats {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.stats == nil {
		return apitype.ProfileStats{}
	}
	return *s.stats
}

func (s *Profile) Categories() []*apitype.Category {
	s.mux.Lock()
	defer s.mux.Unlock()
	categories := make([]*apitype.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, category.Copy())
	}
	return categories
}
