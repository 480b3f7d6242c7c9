package forms

import (
	"context"
	"strings"

	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/common/logger"
	"vincit.fi/collector/ui/tags"
)

const (
	updateDetailsFailedMessage = "Failed to update image details. Please try again."
	generateFailedMessage      = "Could not generate fields. Please try again."
)

var imageMessages = messages{
	"Title.required":    "Title is required",
	"CategoryId.gt":     "Please select a collection",
	"FilePath.required": "Please select an image to upload",
	"Valuation.numeric": "Valuation must be a number",
	"PurchaseUrl.url":   "Purchase URL must be a valid URL",
}

// AddImageForm uploads a new image to a collection or to its wishlist.
type AddImageForm struct {
	Title        string             `validate:"required,max=255"`
	CategoryId   apitype.CategoryId `validate:"gt=0"`
	CategoryName string
	FilePath     string `validate:"required"`
	Description  string
	Valuation    string `validate:"omitempty,numeric"`
	Wishlist     bool
	PurchaseUrl  string `validate:"omitempty,url"`
	Tags         *tags.Editor

	remote     api.ImageRemote
	collection api.CollectionService
	submission
	filePreview
}

func NewAddImageForm(remote api.ImageRemote, collection api.CollectionService) *AddImageForm {
	return &AddImageForm{
		CategoryId: apitype.NoCategory,
		Tags:       tags.NewEditor(),
		remote:     remote,
		collection: collection,
		submission: newSubmission(),
	}
}

// WithCategory selects the collection the image goes to.
func (s *AddImageForm) WithCategory(category *apitype.Category) *AddImageForm {
	if category == nil {
		s.CategoryId = apitype.NoCategory
		s.CategoryName = ""
	} else {
		s.CategoryId = category.Id()
		s.CategoryName = category.Name()
	}
	return s
}

// Submit checks the fields and the file before uploading. Nothing is sent if
// either is invalid.
func (s *AddImageForm) Submit(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.Title = strings.TrimSpace(s.Title)
	s.Valuation = strings.TrimSpace(s.Valuation)
	if err := check(s, imageMessages); err != nil {
		return s.fail(err, "")
	}
	file, err := s.prepare(s.FilePath)
	if err != nil {
		return s.fail(err, err.Error())
	}

	command := &api.UploadImageCommand{
		Title:       s.Title,
		CategoryId:  s.CategoryId,
		Description: s.Description,
		Valuation:   s.Valuation,
		Tags:        s.Tags.Payload(),
		Wishlist:    s.Wishlist,
		File:        file,
	}
	if s.Wishlist {
		command.PurchaseUrl = s.PurchaseUrl
	}
	if _, err := s.remote.UploadImage(ctx, command); err != nil {
		logger.Error.Printf("Upload of '%s' failed: %s", s.Title, err)
		return s.fail(err, uploadFailureMessage(err))
	}
	return s.collection.RecordImageAdded(ctx)
}

// GenerateFields asks the server to suggest the description, valuation,
// tags and purchase URL from the title and applies the answer to the form.
func (s *AddImageForm) GenerateFields(ctx context.Context) error {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		return s.fail(&ValidationError{Field: "Title", Message: imageMessages["Title.required"]}, "")
	}

	fields, err := s.remote.GenerateFields(ctx, &api.GenerateFieldsQuery{
		Title:      title,
		Collection: s.CategoryName,
		Wishlist:   s.Wishlist,
	})
	if err != nil {
		logger.Warn.Printf("Field generation for '%s' failed: %s", title, err)
		return s.fail(err, generateFailedMessage)
	}

	s.Description = fields.Description
	s.Valuation = fields.Valuation
	if len(fields.Tags) > 0 {
		s.Tags = tags.NewEditor(fields.Tags...).WithEnabled(true)
	}
	if fields.PurchaseUrl != "" {
		s.PurchaseUrl = fields.PurchaseUrl
	}
	s.message = ""
	return nil
}

// DetailsEditor saves new details for the selected image.
type DetailsEditor interface {
	EditSelected(ctx context.Context, command *api.UpdateImageDetailsCommand) error
}

// EditImageDetailsForm edits the details of one image.
type EditImageDetailsForm struct {
	Title       string `validate:"required,max=255"`
	Description string
	Valuation   string `validate:"omitempty,numeric"`
	PurchaseUrl string `validate:"omitempty,url"`
	Tags        *tags.Editor

	wishlist bool
	target   DetailsEditor
	submission
}

// NewEditImageDetailsForm starts from the current details of the image.
// Tags are sent only if the image has tags or the tags toggle is turned on.
func NewEditImageDetailsForm(image *apitype.Image, target DetailsEditor) *EditImageDetailsForm {
	current := image.Tags()
	return &EditImageDetailsForm{
		Title:       image.Title(),
		Description: image.Description(),
		Valuation:   image.Valuation(),
		PurchaseUrl: image.PurchaseUrl(),
		Tags:        tags.NewEditor(current...).WithEnabled(len(current) > 0),
		wishlist:    image.IsWishlist(),
		target:      target,
		submission:  newSubmission(),
	}
}

func (s *EditImageDetailsForm) Submit(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.Title = strings.TrimSpace(s.Title)
	s.Valuation = strings.TrimSpace(s.Valuation)
	if err := check(s, imageMessages); err != nil {
		return s.fail(err, "")
	}

	tagList, sendTags := s.Tags.EditPayload()
	command := &api.UpdateImageDetailsCommand{
		Title:       s.Title,
		Description: s.Description,
		Valuation:   s.Valuation,
		Tags:        tagList,
		SendTags:    sendTags,
	}
	if s.wishlist {
		command.PurchaseUrl = s.PurchaseUrl
	}
	if err := s.target.EditSelected(ctx, command); err != nil {
		return s.fail(err, updateDetailsFailedMessage)
	}
	return nil
}
