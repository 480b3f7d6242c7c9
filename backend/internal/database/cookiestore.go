package database

import (
	"net/http"

	"github.com/upper/db/v4"
	"vincit.fi/collector/common/logger"
)

// CookieStore keeps the API session cookies between runs.
type CookieStore struct {
	database   *Database
	collection db.Collection
}

func NewCookieStore(database *Database) *CookieStore {
	return &CookieStore{
		database: database,
	}
}

func (s *CookieStore) getCollection() db.Collection {
	if s.collection == nil {
		s.collection = s.database.Session().Collection("cookie")
	}
	return s.collection
}

// SaveCookies replaces the stored cookies of the base URL.
func (s *CookieStore) SaveCookies(baseUrl string, cookies []*http.Cookie) error {
	return s.getCollection().Session().Tx(func(sess db.Session) error {
		collection := sess.Collection("cookie")
		if err := collection.Find(db.Cond{"base_url": baseUrl}).Delete(); err != nil {
			return err
		}
		for _, cookie := range cookies {
			if _, err := collection.Insert(Cookie{
				BaseUrl: baseUrl,
				Name:    cookie.Name,
				Value:   cookie.Value,
			}); err != nil {
				return err
			}
		}
		logger.Debug.Printf("Stored %d cookies for %s", len(cookies), baseUrl)
		return nil
	})
}

func (s *CookieStore) LoadCookies(baseUrl string) ([]*http.Cookie, error) {
	var stored []Cookie
	if err := s.getCollection().Find(db.Cond{"base_url": baseUrl}).OrderBy("name").All(&stored); err != nil {
		return nil, err
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, cookie := range stored {
		cookies = append(cookies, &http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	return cookies, nil
}

func (s *CookieStore) ClearCookies(baseUrl string) error {
	return s.getCollection().Find(db.Cond{"base_url": baseUrl}).Delete()
}
