package apitype

import (
	"fmt"
	"strings"
)

type User struct {
	id                UserId
	username          string
	email             string
	firstName         string
	lastName          string
	displayName       string
	bio               string
	profilePicture    string
	profilePictureUrl string
	followerCount     int
	followingCount    int
	following         bool
}

func NewUser(id UserId, username string, email string) *User {
	return &User{
		id:       id,
		username: username,
		email:    email,
	}
}

func (s *User) WithNames(firstName string, lastName string, displayName string) *User {
	s.firstName = firstName
	s.lastName = lastName
	s.displayName = displayName
	return s
}

func (s *User) WithBio(bio string) *User {
	s.bio = bio
	return s
}

func (s *User) WithProfilePicture(path string, url string) *User {
	s.profilePicture = path
	s.profilePictureUrl = url
	return s
}

func (s *User) WithFollowCounts(followers int, following int) *User {
	s.followerCount = followers
	s.followingCount = following
	return s
}

func (s *User) WithFollowing(following bool) *User {
	s.following = following
	return s
}

func (s *User) Id() UserId {
	return s.id
}

func (s *User) Username() string {
	return s.username
}

func (s *User) Email() string {
	return s.email
}

func (s *User) FirstName() string {
	return s.firstName
}

func (s *User) LastName() string {
	return s.lastName
}

func (s *User) DisplayName() string {
	return s.displayName
}

func (s *User) Bio() string {
	return s.bio
}

func (s *User) ProfilePicture() string {
	return s.profilePicture
}

func (s *User) ProfilePictureUrl() string {
	return s.profilePictureUrl
}

func (s *User) FollowerCount() int {
	return s.followerCount
}

func (s *User) FollowingCount() int {
	return s.followingCount
}

func (s *User) IsFollowing() bool {
	return s.following
}

// Label is the name shown for the user: display name, then full name, then
// the local part of the email address.
func (s *User) Label() string {
	if s.displayName != "" {
		return s.displayName
	}
	if fullName := strings.TrimSpace(s.firstName + " " + s.lastName); fullName != "" {
		return fullName
	}
	if at := strings.Index(s.email, "@"); at > 0 {
		return s.email[:at]
	}
	return s.username
}

func (s *User) Copy() *User {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}

func (s *User) String() string {
	return fmt.Sprintf("User{%d:%s}", s.id, s.username)
}

// AuthStatus is the answer of the auth check endpoint.
type AuthStatus struct {
	authenticated bool
	user          *User
}

func NewAuthenticated(user *User) *AuthStatus {
	return &AuthStatus{authenticated: true, user: user}
}

func NewUnauthenticated() *AuthStatus {
	return &AuthStatus{authenticated: false}
}

func (s *AuthStatus) IsAuthenticated() bool {
	return s.authenticated && s.user != nil
}

func (s *AuthStatus) User() *User {
	return s.user
}

type ProfileStats struct {
	TotalValue       float64
	TotalCollections int
	TotalItems       int
}
