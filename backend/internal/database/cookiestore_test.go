package database

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

const testBaseUrl = "http://localhost:8000/api/"

func TestCookieStore(t *testing.T) {
	a := require.New(t)
	sut := NewCookieStore(NewInMemoryDatabase())

	t.Run("Empty", func(t *testing.T) {
		cookies, err := sut.LoadCookies(testBaseUrl)
		a.Nil(err)
		a.Empty(cookies)
	})

	t.Run("Save and load", func(t *testing.T) {
		a.Nil(sut.SaveCookies(testBaseUrl, []*http.Cookie{
			{Name: "sessionid", Value: "s1"},
			{Name: "csrftoken", Value: "c1"},
		}))

		cookies, err := sut.LoadCookies(testBaseUrl)
		a.Nil(err)
		a.Len(cookies, 2)
		a.Equal("csrftoken", cookies[0].Name)
		a.Equal("c1", cookies[0].Value)
		a.Equal("sessionid", cookies[1].Name)
	})

	t.Run("Save replaces", func(t *testing.T) {
		a.Nil(sut.SaveCookies(testBaseUrl, []*http.Cookie{{Name: "sessionid", Value: "s2"}}))

		cookies, err := sut.LoadCookies(testBaseUrl)
		a.Nil(err)
		a.Len(cookies, 1)
		a.Equal("s2", cookies[0].Value)
	})

	t.Run("Other base URL is separate", func(t *testing.T) {
		cookies, err := sut.LoadCookies("https://example.com/api/")
		a.Nil(err)
		a.Empty(cookies)
	})

	t.Run("Clear", func(t *testing.T) {
		a.Nil(sut.ClearCookies(testBaseUrl))

		cookies, err := sut.LoadCookies(testBaseUrl)
		a.Nil(err)
		a.Empty(cookies)
	})
}
