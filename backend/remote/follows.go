package remote

import (
	"context"
	"fmt"
	"net/http"

	"vincit.fi/collector/api/apitype"
)

func (s *Client) GetFollowers(ctx context.Context, userId apitype.UserId) ([]*apitype.User, error) {
	return s.getFollowList(ctx, "get followers", followListPath(userId, "followers"))
}

func (s *Client) GetFollowing(ctx context.Context, userId apitype.UserId) ([]*apitype.User, error) {
	return s.getFollowList(ctx, "get following", followListPath(userId, "following"))
}

// followListPath points to the current user's list when userId is NoUser.
func followListPath(userId apitype.UserId, list string) string {
	if userId == apitype.NoUser {
		return fmt.Sprintf("follows/%s/", list)
	}
	return fmt.Sprintf("profiles/%d/%s/", userId, list)
}

func (s *Client) getFollowList(ctx context.Context, op string, path string) ([]*apitype.User, error) {
	var raw []rawUser
	if err := s.get(ctx, op, path, nil, &raw); err != nil {
		return nil, err
	}
	return toApiUsers(raw), nil
}

func (s *Client) Follow(ctx context.Context, userId apitype.UserId) error {
	return s.postFollow(ctx, "follow", "follows/follow/", userId)
}

func (s *Client) Unfollow(ctx context.Context, userId apitype.UserId) error {
	return s.postFollow(ctx, "unfollow", "follows/unfollow/", userId)
}

func (s *Client) postFollow(ctx context.Context, op string, path string, userId apitype.UserId) error {
	body, err := jsonBody(map[string]apitype.UserId{"user_id": userId})
	if err != nil {
		return err
	}
	return s.send(ctx, op, http.MethodPost, path, body, nil)
}
