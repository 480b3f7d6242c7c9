package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
)

func (s *Client) FetchCategories(ctx context.Context) ([]*apitype.Category, error) {
	var raw []rawCategory
	if err := s.get(ctx, "fetch categories", "categories/", nil, &raw); err != nil {
		return nil, err
	}
	return toApiCategories(raw), nil
}

func (s *Client) FetchUserCategories(ctx context.Context, userId apitype.UserId, publicOnly bool) ([]*apitype.Category, error) {
	var query url.Values
	if publicOnly {
		query = url.Values{"public_only": []string{"true"}}
	}
	var raw []rawCategory
	if err := s.get(ctx, "fetch user categories", fmt.Sprintf("profiles/%d/categories/", userId), query, &raw); err != nil {
		return nil, err
	}
	return toApiCategories(raw), nil
}

// CreateCategory sends a JSON body, or a multipart body when the command has
// a placeholder image.
func (s *Client) CreateCategory(ctx context.Context, command *api.CreateCategoryCommand) (*apitype.Category, error) {
	const op = "create category"
	var raw rawCategory

	if command.Placeholder != nil {
		form := newForm().
			field("name", command.Name).
			field("is_public", strconv.FormatBool(command.Public)).
			file("placeholder_image", command.Placeholder)
		if len(command.Tags) > 0 {
			form.tags(command.Tags)
		}
		body, err := form.build()
		if err != nil {
			return nil, err
		}
		if err := s.send(ctx, op, http.MethodPost, "upload-category-with-image/", body, &raw); err != nil {
			return nil, err
		}
		return toApiCategory(&raw), nil
	}

	body, err := jsonBody(struct {
		Name     string   `json:"name"`
		IsPublic bool     `json:"is_public"`
		Tags     []string `json:"tags,omitempty"`
	}{command.Name, command.Public, command.Tags})
	if err != nil {
		return nil, err
	}
	if err := s.send(ctx, op, http.MethodPost, "categories/", body, &raw); err != nil {
		return nil, err
	}
	return toApiCategory(&raw), nil
}

func (s *Client) DeleteCategory(ctx context.Context, id apitype.CategoryId) error {
	return s.send(ctx, "delete category", http.MethodDelete, fmt.Sprintf("categories/%d/", id), nil, nil)
}

// ToggleCategoryVisibility returns the category with only id, name and the
// new visibility set.
func (s *Client) ToggleCategoryVisibility(ctx context.Context, id apitype.CategoryId) (*apitype.Category, error) {
	var raw rawCategory
	if err := s.send(ctx, "toggle visibility", http.MethodPatch, fmt.Sprintf("categories/%d/toggle-visibility/", id), nil, &raw); err != nil {
		return nil, err
	}
	return toApiCategory(&raw), nil
}

func (s *Client) UpdateCategoryTags(ctx context.Context, id apitype.CategoryId, tags []string) (*apitype.Category, error) {
	if tags == nil {
		tags = []string{}
	}
	body, err := jsonBody(map[string][]string{"tags": tags})
	if err != nil {
		return nil, err
	}
	var raw rawCategory
	if err := s.send(ctx, "update category tags", http.MethodPatch, fmt.Sprintf("categories/%d/update-tags/", id), body, &raw); err != nil {
		return nil, err
	}
	return toApiCategory(&raw), nil
}
