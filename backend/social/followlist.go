package social

import (
	"context"
	"fmt"
	"sync"

	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/logger"
	"vincit.fi/collector/common/util"
)

type ListKind string

const (
	Followers ListKind = "followers"
	Following ListKind = "following"
)

// FollowList shows the followers or the followed users of one user.
type FollowList struct {
	remote api.FollowRemote
	sender api.Sender
	kind   ListKind
	userId apitype.UserId

	mux      sync.Mutex
	state    ViewState
	users    []*apitype.User
	message  string
	inFlight *util.InFlight[apitype.UserId]
}

// NewFollowList creates the list of the given user. apitype.NoUser lists the
// current user's edges.
func NewFollowList(remote api.FollowRemote, sender api.Sender, kind ListKind, userId apitype.UserId) *FollowList {
	return &FollowList{
		remote:   remote,
		sender:   sender,
		kind:     kind,
		userId:   userId,
		state:    Loading,
		users:    []*apitype.User{},
		inFlight: util.NewInFlight[apitype.UserId](),
	}
}

func (s *FollowList) Load(ctx context.Context) error {
	s.mux.Lock()
	s.state = Loading
	s.message = ""
	s.mux.Unlock()

	var users []*apitype.User
	var err error
	if s.kind == Followers {
		users, err = s.remote.GetFollowers(ctx, s.userId)
	} else {
		users, err = s.remote.GetFollowing(ctx, s.userId)
	}

	s.mux.Lock()
	defer s.mux.Unlock()
	if err != nil {
		logger.Error.Printf("Loading %s of %d failed: %s", s.kind, s.userId, err)
		s.state = Error
		s.message = fmt.Sprintf("Failed to load %s. Please try again later.", s.kind)
		return err
	}
	s.users = users
	s.state = stateOf(len(users))
	return nil
}

// Toggle follows or unfollows the listed user and flips the flag in place.
// The list is not refetched.
func (s *FollowList) Toggle(ctx context.Context, userId apitype.UserId) error {
	following, found := s.isFollowing(userId)
	if !found {
		return fmt.Errorf("user %d is not in the list", userId)
	}
	if !s.inFlight.TryBegin(userId) {
		return util.ErrInFlight
	}
	defer s.inFlight.End(userId)

	var err error
	if following {
		err = s.remote.Unfollow(ctx, userId)
	} else {
		err = s.remote.Follow(ctx, userId)
	}
	if err != nil {
		s.sender.SendError("Failed to update follow status.", err)
		return err
	}

	s.mux.Lock()
	defer s.mux.Unlock()
	for i, user := range s.users {
		if user.Id() == userId {
			s.users[i] = user.Copy().WithFollowing(!following)
		}
	}
	return nil
}

func (s *FollowList) isFollowing(userId apitype.UserId) (bool, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	for _, user := range s.users {
		if user.Id() == userId {
			return user.IsFollowing(), true
		}
	}
	return false, false
}

func (s *FollowList) Kind() ListKind {
	return s.kind
}

func (s *FollowList) State() ViewState {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.state
}

// Message is the error text in the Error state and empty otherwise.
func (s *FollowList) Message() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.message
}

// EmptyMessage is shown when the list has no users.
func (s *FollowList) EmptyMessage() string {
	if s.kind == Followers {
		return "You don't have any followers yet."
	}
	return "You're not following anyone yet."
}

func (s *FollowList) Users() []*apitype.User {
	s.mux.Lock()
	defer s.mux.Unlock()
	users := make([]*apitype.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user.Copy())
	}
	return users
}
