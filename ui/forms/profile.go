package forms

import (
	"context"
	"strings"

	"vincit.fi/collector/api"
	"vincit.fi/collector/api/apitype"
)

const updateProfileFailedMessage = "Failed to update profile. Please try again."

var profileMessages = messages{
	"DisplayName.max": "Display name must not exceed 100 characters",
	"Bio.max":         "Bio must not exceed 500 characters",
}

// ProfileUpdater saves the own profile.
type ProfileUpdater interface {
	Update(ctx context.Context, command *api.UpdateProfileCommand) error
}

type EditProfileForm struct {
	FirstName   string
	LastName    string
	DisplayName string `validate:"max=100"`
	Bio         string `validate:"max=500"`
	PicturePath string

	target ProfileUpdater
	submission
	filePreview
}

func NewEditProfileForm(user *apitype.User, target ProfileUpdater) *EditProfileForm {
	form := &EditProfileForm{target: target, submission: newSubmission()}
	if user != nil {
		form.FirstName = user.FirstName()
		form.LastName = user.LastName()
		form.DisplayName = user.DisplayName()
		form.Bio = user.Bio()
	}
	return form
}

func (s *EditProfileForm) Submit(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.DisplayName = strings.TrimSpace(s.DisplayName)
	if err := check(s, profileMessages); err != nil {
		return s.fail(err, "")
	}

	command := &api.UpdateProfileCommand{
		FirstName:   strings.TrimSpace(s.FirstName),
		LastName:    strings.TrimSpace(s.LastName),
		DisplayName: s.DisplayName,
		Bio:         s.Bio,
	}
	if s.PicturePath != "" {
		picture, err := s.prepare(s.PicturePath)
		if err != nil {
			return s.fail(err, err.Error())
		}
		command.Picture = picture
	}

	if err := s.target.Update(ctx, command); err != nil {
		return s.fail(err, updateProfileFailedMessage)
	}
	return nil
}
