package forms

import (
	"context"
	"strings"

	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
	"vincit.fi/collector/ui/tags"
)

const createCategoryFailedMessage = "Failed to create collection. Please try again."

var addCategoryMessages = messages{
	"Name.required": "Collection name is required",
}

// AddCategoryForm creates a new collection, optionally with a placeholder
// image and tags.
type AddCategoryForm struct {
	Name            string `validate:"required,max=255"`
	Public          bool
	PlaceholderPath string
	Tags            *tags.Editor

	remote     api.CategoryRemote
	collection api.CollectionService
	submission
	filePreview
}

func NewAddCategoryForm(remote api.CategoryRemote, collection api.CollectionService) *AddCategoryForm {
	return &AddCategoryForm{
		Public:     true,
		Tags:       tags.NewEditor(),
		remote:     remote,
		collection: collection,
		submission: newSubmission(),
	}
}

// Submit validates the form, creates the collection and refreshes the
// collection list.
func (s *AddCategoryForm) Submit(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.Name = strings.TrimSpace(s.Name)
	if err := check(s, addCategoryMessages); err != nil {
		return s.fail(err, "")
	}

	command := &api.CreateCategoryCommand{
		Name:   s.Name,
		Public: s.Public,
		Tags:   s.Tags.Payload(),
	}
	if s.PlaceholderPath != "" {
		placeholder, err := s.prepare(s.PlaceholderPath)
		if err != nil {
			return s.fail(err, err.Error())
		}
		command.Placeholder = placeholder
	}

	if _, err := s.remote.CreateCategory(ctx, command); err != nil {
		return s.fail(err, createCategoryFailedMessage)
	}
	return s.collection.RecordCategoryAdded(ctx)
}

// TagsEditor saves the tags of a category.
type TagsEditor interface {
	EditTags(ctx context.Context, id apitype.CategoryId, editor *tags.Editor) error
}

// EditTagsForm edits the tags of an existing collection.
type EditTagsForm struct {
	Tags *tags.Editor

	categoryId apitype.CategoryId
	target     TagsEditor
	submission
}

func NewEditTagsForm(categoryId apitype.CategoryId, editor *tags.Editor, target TagsEditor) *EditTagsForm {
	return &EditTagsForm{
		Tags:       editor,
		categoryId: categoryId,
		target:     target,
		submission: newSubmission(),
	}
}

func (s *EditTagsForm) Submit(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if err := s.target.EditTags(ctx, s.categoryId, s.Tags); err != nil {
		return s.fail(err, "Failed to update tags. Please try again.")
	}
	return nil
}
