package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/truedev-client/client"
	"github.com/jrsteele09/truedev-client/internal/utils"
	"github.com/jrsteele09/truedev-client/sessions"
	"github.com/jrsteele09/truedev-client/users"
)

type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Signup registers a new account. It does not log in.
func (a *API) Signup(ctx context.Context, in SignupInput, profileImage *File) error {
	return a.call(ctx, PathSignup, client.RequestOptions{
		Method: http.MethodPost,
		Body:   multipartWith(partUser, in, profileImage),
	}, nil)
}

type loginResponse struct {
	Token struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"token"`
	User struct {
		UserName     string `json:"userName"`
		UserEmail    string `json:"userEmail"`
		ProfileImage string `json:"profileImage"`
	} `json:"user"`
}

// Login exchanges credentials for a session and stores it. A wrong password
// comes back as a 401 and is never treated as an expired session.
func (a *API) Login(ctx context.Context, email, password string) (*users.UserProfile, error) {
	body, err := client.JSON(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := a.call(ctx, PathLogin, client.RequestOptions{
		Method:                    http.MethodPost,
		Body:                      body,
		SuppressUnauthorizedEvent: true,
	}, &resp); err != nil {
		return nil, err
	}

	user := &users.UserProfile{
		UserName:     resp.User.UserName,
		Email:        resp.User.UserEmail,
		ProfileImage: resp.User.ProfileImage,
	}
	if err := a.store.SetAuth(sessions.AuthState{
		Token:        resp.Token.AccessToken,
		RefreshToken: resp.Token.RefreshToken,
		User:         user,
	}); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to persist session")
	}
	a.logger.Info().Str("user", user.UserName).Msg("Logged in")
	return user, nil
}

// Logout ends the session. A failed logout request is logged and ignored;
// the local session is always cleared.
func (a *API) Logout(ctx context.Context, skipRequest bool) error {
	if !skipRequest {
		if err := a.call(ctx, PathLogout, client.RequestOptions{Method: http.MethodPost}, nil); err != nil {
			a.logger.Warn().Err(err).Msg("Logout request failed")
		}
	}
	return a.store.Clear()
}

type accountResponse struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	ProfileImage *string `json:"profileImage"`
}

// UpdateAccount changes the nickname, email and optionally the profile image,
// then refreshes the stored user from the response.
func (a *API) UpdateAccount(ctx context.Context, name, email string, profileImage *File) (*users.UserProfile, error) {
	in := map[string]string{"name": name, "email": email}
	var resp accountResponse
	if err := a.call(ctx, PathAccount, client.RequestOptions{
		Method: http.MethodPatch,
		Body:   multipartWith(partUser, in, profileImage),
	}, &resp); err != nil {
		return nil, err
	}

	currentImage := ""
	if current := a.store.State().User; current != nil {
		currentImage = current.ProfileImage
	}
	user := &users.UserProfile{
		UserName:     utils.ValueOr(resp.Name, name),
		Email:        utils.ValueOr(resp.Email, email),
		ProfileImage: utils.ValueOr(resp.ProfileImage, currentImage),
	}
	if err := a.store.SetUser(user); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to persist user")
	}
	return user, nil
}

// DeleteAccount removes the account and then clears the local session
// without calling logout.
func (a *API) DeleteAccount(ctx context.Context) error {
	if err := a.call(ctx, PathAccount, client.RequestOptions{Method: http.MethodDelete}, nil); err != nil {
		return err
	}
	return a.Logout(ctx, true)
}

// ChangePassword sends both passwords as query parameters, as the backend expects.
func (a *API) ChangePassword(ctx context.Context, current, next string) error {
	query := url.Values{"currentPassword": {current}, "newPassword": {next}}
	return a.call(ctx, PathPassword+"?"+query.Encode(), client.RequestOptions{Method: http.MethodPatch}, nil)
}
