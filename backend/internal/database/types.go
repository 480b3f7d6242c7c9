package database

import "time"

type MigrationId int64

type Migration struct {
	Id MigrationId `db:"id"`
}

type Cookie struct {
	Id      int64  `db:"id,omitempty"`
	BaseUrl string `db:"base_url"`
	Name    string `db:"name"`
	Value   string `db:"value"`
}

type CategorySnapshot struct {
	Id                      int64  `db:"id,omitempty"`
	UserId                  int64  `db:"user_id"`
	CategoryId              int64  `db:"category_id"`
	Position                int    `db:"position"`
	Name                    string `db:"name"`
	IsPublic                bool   `db:"is_public"`
	PlaceholderImage        string `db:"placeholder_image"`
	PlaceholderPresignedUrl string `db:"placeholder_presigned_url"`
	Tags                    string `db:"tags"`
}

type ImageSnapshot struct {
	Id           int64  `db:"id,omitempty"`
	UserId       int64  `db:"user_id"`
	ImageId      int64  `db:"image_id"`
	CategoryId   int64  `db:"category_id"`
	Position     int    `db:"position"`
	Title        string `db:"title"`
	Description  string `db:"description"`
	Valuation    string `db:"valuation"`
	Tags         string `db:"tags"`
	IsWishlist   bool   `db:"is_wishlist"`
	PurchaseUrl  string `db:"purchase_url"`
	Path         string `db:"path"`
	PresignedUrl string `db:"presigned_url"`
}

type StatusKey string

type Status struct {
	Key       StatusKey `db:"key"`
	Timestamp time.Time `db:"timestamp"`
}
