package remote

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"
	"vincit.fi/collector/common/logger"
)

// sessionJar is a cookie jar that can be emptied on logout.
type sessionJar struct {
	mux sync.Mutex
	jar *cookiejar.Jar
}

func newSessionJar() *sessionJar {
	return &sessionJar{jar: newCookieJar()}
}

func newCookieJar() *cookiejar.Jar {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		logger.Error.Panicf("Could not create cookie jar: %s", err)
	}
	return jar
}

func (s *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.jar.SetCookies(u, cookies)
}

func (s *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.jar.Cookies(u)
}

func (s *sessionJar) Reset() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.jar = newCookieJar()
}

// Cookies returns the cookies that would be sent to the API.
func (s *Client) Cookies() []*http.Cookie {
	return s.jar.Cookies(s.baseUrl)
}

// RestoreCookies puts previously saved cookies back to the jar.
func (s *Client) RestoreCookies(cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	s.jar.SetCookies(s.baseUrl, cookies)
}

func (s *Client) ClearCookies() {
	s.jar.Reset()
}

func (s *Client) cookieValue(name string) string {
	for _, cookie := range s.jar.Cookies(s.baseUrl) {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}
