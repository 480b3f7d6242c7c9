package remote

import (
	"context"
	"net/http"

	"vincit.fi/collector/api/apitype"
)

func (s *Client) CheckAuth(ctx context.Context) (*apitype.AuthStatus, error) {
	var raw rawAuthUser
	if err := s.get(ctx, "check auth", "auth/user/", nil, &raw); err != nil {
		return nil, err
	}
	return toAuthStatus(&raw), nil
}

func (s *Client) LoginWithGoogle(ctx context.Context, idToken string) (*apitype.User, error) {
	const op = "login"
	body, err := jsonBody(map[string]string{"token": idToken})
	if err != nil {
		return nil, err
	}
	var raw rawAuthUser
	if err := s.send(ctx, op, http.MethodPost, "auth/google/", body, &raw); err != nil {
		return nil, err
	}
	status := toAuthStatus(&raw)
	if !status.IsAuthenticated() {
		return nil, &Error{Op: op, Kind: KindDecode, Message: "Login failed. Please try again."}
	}
	return status.User(), nil
}

func (s *Client) Logout(ctx context.Context) error {
	return s.send(ctx, "logout", http.MethodPost, "auth/logout/", nil, nil)
}

// DeleteAccount removes the account and, on success, all cookies of the jar.
func (s *Client) DeleteAccount(ctx context.Context) error {
	if err := s.send(ctx, "delete account", http.MethodPost, "auth/delete-account/", nil, nil); err != nil {
		return err
	}
	s.ClearCookies()
	return nil
}
