package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
)

func (s *Client) GetProfile(ctx context.Context, id apitype.UserId) (*apitype.User, error) {
	var raw rawUser
	if err := s.get(ctx, "get profile", fmt.Sprintf("profiles/%d/", id), nil, &raw); err != nil {
		return nil, err
	}
	return toApiUser(&raw), nil
}

// UpdateProfile always sends a multipart body. The picture is only included
// when a new one was chosen.
func (s *Client) UpdateProfile(ctx context.Context, id apitype.UserId, command *api.UpdateProfileCommand) (*apitype.User, error) {
	body, err := newForm().
		field("first_name", command.FirstName).
		field("last_name", command.LastName).
		field("display_name", command.DisplayName).
		field("bio", command.Bio).
		file("profile_picture", command.Picture).
		build()
	if err != nil {
		return nil, err
	}
	var raw rawUser
	if err := s.send(ctx, "update profile", http.MethodPut, fmt.Sprintf("profiles/%d/update/", id), body, &raw); err != nil {
		return nil, err
	}
	return toApiUser(&raw), nil
}

func (s *Client) GetOwnStats(ctx context.Context) (*apitype.ProfileStats, error) {
	return s.getStats(ctx, "profiles/stats/")
}

func (s *Client) GetUserStats(ctx context.Context, id apitype.UserId) (*apitype.ProfileStats, error) {
	return s.getStats(ctx, fmt.Sprintf("profiles/%d/stats/", id))
}

func (s *Client) getStats(ctx context.Context, path string) (*apitype.ProfileStats, error) {
	var raw rawStats
	if err := s.get(ctx, "get stats", path, nil, &raw); err != nil {
		return nil, err
	}
	return &apitype.ProfileStats{
		TotalValue:       float64(raw.TotalValue),
		TotalCollections: raw.TotalCollections,
		TotalItems:       raw.TotalItems,
	}, nil
}

func (s *Client) SearchUsers(ctx context.Context, query string) ([]*apitype.User, error) {
	const op = "search users"
	if err := s.searchLimiter.Wait(ctx); err != nil {
		return nil, newNetworkError(op, err)
	}
	var raw []rawUser
	if err := s.get(ctx, op, "profiles/", url.Values{"search": []string{query}}, &raw); err != nil {
		return nil, err
	}
	return toApiUsers(raw), nil
}

func (s *Client) SearchByTag(ctx context.Context, tag string) ([]*apitype.TagSearchResult, error) {
	const op = "search by tag"
	if err := s.searchLimiter.Wait(ctx); err != nil {
		return nil, newNetworkError(op, err)
	}
	var raw []rawTagResult
	if err := s.get(ctx, op, "search/by-tag/", url.Values{"tag": []string{tag}}, &raw); err != nil {
		return nil, err
	}
	results := make([]*apitype.TagSearchResult, 0, len(raw))
	for i := range raw {
		results = append(results, toApiTagResult(&raw[i]))
	}
	return results, nil
}
