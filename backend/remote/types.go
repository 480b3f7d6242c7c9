package remote

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"vincit.fi/collector/api/apitype"
)

// flexFloat reads decimals that the backend sends either as JSON numbers or
// as strings. null and "" read as zero.
type flexFloat float64

func (s *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = 0
		return nil
	}
	text := string(data)
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			*s = 0
			return nil
		}
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return err
	}
	*s = flexFloat(value)
	return nil
}

// flexString reads a value sent either as a string or as a number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if bytes.HasPrefix(data, []byte(`"`)) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = flexString(text)
		return nil
	}
	*s = flexString(data)
	return nil
}

type rawImage struct {
	Id           int64      `json:"id"`
	Title        string     `json:"title"`
	Path         string     `json:"path"`
	PresignedUrl string     `json:"presigned_url"`
	Category     int64      `json:"category"`
	Description  string     `json:"description"`
	Valuation    flexString `json:"valuation"`
	Tags         []string   `json:"tags"`
	PurchaseUrl  string     `json:"purchase_url"`
	IsWishlist   bool       `json:"is_wishlist"`
}

type rawCategory struct {
	Id                      int64      `json:"id"`
	Name                    string     `json:"name"`
	PlaceholderImage        string     `json:"placeholder_image"`
	PlaceholderPresignedUrl string     `json:"placeholder_presigned_url"`
	Images                  []rawImage `json:"images"`
	IsPublic                *bool      `json:"is_public"`
	Tags                    []string   `json:"tags"`
}

type rawUser struct {
	Id                int64  `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	FollowerCount     int    `json:"follower_count"`
	FollowingCount    int    `json:"following_count"`
	IsFollowing       bool   `json:"is_following"`
	Bio               string `json:"bio"`
	DisplayName       string `json:"display_name"`
	ProfilePicture    string `json:"profile_picture"`
	ProfilePictureUrl string `json:"profile_picture_url"`
}

type rawAuthUser struct {
	UserId          int64  `json:"user_id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

type rawStats struct {
	TotalValue       flexFloat `json:"totalValue"`
	TotalCollections int       `json:"totalCollections"`
	TotalItems       int       `json:"totalItems"`
}

type rawFinancialSummary struct {
	TotalSpending flexFloat `json:"totalSpending"`
	Collections   []struct {
		CollectionName string    `json:"collectionName"`
		Price          flexFloat `json:"price"`
	} `json:"collections"`
	MonthlySpending []struct {
		Month  string    `json:"month"`
		Amount flexFloat `json:"amount"`
	} `json:"monthlySpending"`
}

type rawGoal struct {
	Id              int64     `json:"id"`
	MonthlySpending flexFloat `json:"monthly_spending"`
	SpendingCushion bool      `json:"spending_cushion"`
	CushionAmount   flexFloat `json:"cushion_amount"`
	CreatedAt       string    `json:"created_at"`
}

type rawTagResult struct {
	Type         string  `json:"type"`
	Id           int64   `json:"id"`
	Title        string  `json:"title"`
	ImageUrl     string  `json:"image_url"`
	CategoryName string  `json:"category_name"`
	User         rawUser `json:"user"`
}

type rawAiFields struct {
	Description string     `json:"description"`
	Valuation   flexString `json:"valuation"`
	Tags        []string   `json:"tags"`
	PurchaseUrl string     `json:"purchase_url"`
}

func toApiImage(raw *rawImage) *apitype.Image {
	return apitype.NewImage(apitype.ImageId(raw.Id), apitype.CategoryId(raw.Category), raw.Title).
		WithDescription(raw.Description).
		WithValuation(string(raw.Valuation)).
		WithTags(raw.Tags...).
		WithWishlist(raw.IsWishlist, raw.PurchaseUrl).
		WithStorage(raw.Path, raw.PresignedUrl)
}

// toApiCategory converts a category. Embedded images without a category id
// belong to the category they are embedded in.
func toApiCategory(raw *rawCategory) *apitype.Category {
	images := make([]*apitype.Image, 0, len(raw.Images))
	for i := range raw.Images {
		if raw.Images[i].Category == 0 {
			raw.Images[i].Category = raw.Id
		}
		images = append(images, toApiImage(&raw.Images[i]))
	}
	public := true
	if raw.IsPublic != nil {
		public = *raw.IsPublic
	}
	return apitype.NewCategory(apitype.CategoryId(raw.Id), raw.Name).
		WithVisibility(public).
		WithPlaceholder(raw.PlaceholderImage, raw.PlaceholderPresignedUrl).
		WithTags(raw.Tags...).
		WithImages(images...)
}

func toApiCategories(raw []rawCategory) []*apitype.Category {
	categories := make([]*apitype.Category, 0, len(raw))
	for i := range raw {
		categories = append(categories, toApiCategory(&raw[i]))
	}
	return categories
}

func toApiUser(raw *rawUser) *apitype.User {
	return apitype.NewUser(apitype.UserId(raw.Id), raw.Username, raw.Email).
		WithNames(raw.FirstName, raw.LastName, raw.DisplayName).
		WithBio(raw.Bio).
		WithProfilePicture(raw.ProfilePicture, raw.ProfilePictureUrl).
		WithFollowCounts(raw.FollowerCount, raw.FollowingCount).
		WithFollowing(raw.IsFollowing)
}

func toApiUsers(raw []rawUser) []*apitype.User {
	users := make([]*apitype.User, 0, len(raw))
	for i := range raw {
		users = append(users, toApiUser(&raw[i]))
	}
	return users
}

func toAuthStatus(raw *rawAuthUser) *apitype.AuthStatus {
	if !raw.IsAuthenticated || raw.UserId == 0 {
		return apitype.NewUnauthenticated()
	}
	return apitype.NewAuthenticated(toAuthUser(raw))
}

func toAuthUser(raw *rawAuthUser) *apitype.User {
	return apitype.NewUser(apitype.UserId(raw.UserId), "", raw.Email).
		WithNames(raw.FirstName, raw.LastName, "")
}

func toApiGoal(raw *rawGoal) *apitype.Goal {
	return apitype.NewGoal(apitype.GoalId(raw.Id), float64(raw.MonthlySpending), raw.SpendingCushion,
		float64(raw.CushionAmount), parseTimestamp(raw.CreatedAt))
}

func toApiSummary(raw *rawFinancialSummary) *apitype.FinancialSummary {
	summary := &apitype.FinancialSummary{
		TotalSpending:   float64(raw.TotalSpending),
		Collections:     make([]apitype.CollectionPrice, 0, len(raw.Collections)),
		MonthlySpending: make([]apitype.MonthlySpending, 0, len(raw.MonthlySpending)),
	}
	for _, collection := range raw.Collections {
		summary.Collections = append(summary.Collections, apitype.CollectionPrice{
			CollectionName: collection.CollectionName,
			Price:          float64(collection.Price),
		})
	}
	for _, month := range raw.MonthlySpending {
		summary.MonthlySpending = append(summary.MonthlySpending, apitype.MonthlySpending{
			Month:  month.Month,
			Amount: float64(month.Amount),
		})
	}
	return summary
}

func toApiTagResult(raw *rawTagResult) *apitype.TagSearchResult {
	resultType := apitype.TagResultImage
	if raw.Type == string(apitype.TagResultCategory) {
		resultType = apitype.TagResultCategory
	}
	return &apitype.TagSearchResult{
		Type:         resultType,
		Id:           raw.Id,
		Title:        raw.Title,
		ImageUrl:     raw.ImageUrl,
		Owner:        toApiUser(&raw.User),
		CategoryName: raw.CategoryName,
	}
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02"}

// parseTimestamp returns the zero time for values it cannot read.
func parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
