package apitype

// FollowEdge is a directed relation from follower to followed.
type FollowEdge struct {
	follower UserId
	followed UserId
}

func NewFollowEdge(follower UserId, followed UserId) *FollowEdge {
	return &FollowEdge{follower: follower, followed: followed}
}

func (s *FollowEdge) Follower() UserId {
	return s.follower
}

func (s *FollowEdge) Followed() UserId {
	return s.followed
}

// WithFollowToggled returns a copy of the user as seen after the current user
// followed or unfollowed them. The follower count never goes below zero.
func (s *User) WithFollowToggled(following bool) *User {
	toggled := s.Copy()
	if toggled.following == following {
		return toggled
	}
	toggled.following = following
	if following {
		toggled.followerCount++
	} else if toggled.followerCount > 0 {
		toggled.followerCount--
	}
	return toggled
}
