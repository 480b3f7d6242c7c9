package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/logger"
)

const (
	uploadPath         = "upload-image/"
	fallbackUploadPath = "images/upload/"
)

// UploadImage posts the image to the upload endpoint. If the server answers
// with a non-2xx status the alternate endpoint is tried once. Network errors
// are not retried.
func (s *Client) UploadImage(ctx context.Context, command *api.UploadImageCommand) (*apitype.Image, error) {
	const op = "upload image"
	form := newForm().
		field("title", command.Title).
		field("category", command.CategoryId.String()).
		file("file", command.File)
	if command.Description != "" {
		form.field("description", command.Description)
	}
	if command.Valuation != "" {
		form.field("valuation", command.Valuation)
	}
	if len(command.Tags) > 0 {
		form.tags(command.Tags)
	}
	if command.Wishlist {
		form.field("is_wishlist", "true")
		if command.PurchaseUrl != "" {
			form.field("purchase_url", command.PurchaseUrl)
		}
	}
	body, err := form.build()
	if err != nil {
		return nil, err
	}

	var raw rawImage
	err = s.send(ctx, op, http.MethodPost, uploadPath, body, &raw)
	var remoteErr *Error
	if errors.As(err, &remoteErr) && remoteErr.Kind == KindStatus {
		logger.Warn.Printf("Upload to '%s' failed with %d, trying '%s'", uploadPath, remoteErr.StatusCode, fallbackUploadPath)
		err = s.send(ctx, op, http.MethodPost, fallbackUploadPath, body, &raw)
	}
	if err != nil {
		return nil, err
	}
	return toApiImage(&raw), nil
}

func (s *Client) DeleteImage(ctx context.Context, id apitype.ImageId) error {
	return s.send(ctx, "delete image", http.MethodDelete, fmt.Sprintf("images/%d/", id), nil, nil)
}

func (s *Client) BulkDeleteImages(ctx context.Context, ids []apitype.ImageId) error {
	body, err := jsonBody(map[string][]apitype.ImageId{"image_ids": ids})
	if err != nil {
		return err
	}
	return s.send(ctx, "bulk delete images", http.MethodPost, "bulk-delete-images/", body, nil)
}

func (s *Client) UpdateImageDetails(ctx context.Context, id apitype.ImageId, command *api.UpdateImageDetailsCommand) (*apitype.Image, error) {
	form := newForm().
		field("title", command.Title).
		field("description", command.Description).
		field("valuation", command.Valuation).
		field("purchase_url", command.PurchaseUrl)
	if command.SendTags {
		form.tags(command.Tags)
	}
	body, err := form.build()
	if err != nil {
		return nil, err
	}
	var raw rawImage
	if err := s.send(ctx, "update image details", http.MethodPatch, fmt.Sprintf("images/%d/update-details/", id), body, &raw); err != nil {
		return nil, err
	}
	return toApiImage(&raw), nil
}

func (s *Client) TransferToCollection(ctx context.Context, id apitype.ImageId) (*apitype.Image, error) {
	var raw rawImage
	if err := s.send(ctx, "transfer to collection", http.MethodPost, fmt.Sprintf("images/%d/transfer-to-collection/", id), nil, &raw); err != nil {
		return nil, err
	}
	return toApiImage(&raw), nil
}

func (s *Client) GenerateFields(ctx context.Context, query *api.GenerateFieldsQuery) (*apitype.AiFields, error) {
	body, err := jsonBody(struct {
		Title      string `json:"title"`
		Collection string `json:"collection"`
		IsWishlist bool   `json:"is_wishlist"`
	}{query.Title, query.Collection, query.Wishlist})
	if err != nil {
		return nil, err
	}
	var raw rawAiFields
	if err := s.send(ctx, "generate fields", http.MethodPost, "generate-ai-fields/", body, &raw); err != nil {
		return nil, err
	}
	return &apitype.AiFields{
		Description: raw.Description,
		Valuation:   string(raw.Valuation),
		Tags:        raw.Tags,
		PurchaseUrl: raw.PurchaseUrl,
	}, nil
}
