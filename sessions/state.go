package sessions

import "github.com/jrsteele09/truedev-client/users"

// Storage keys for the persisted auth state.
const (
	KeyToken        = "lucas_auth_token"
	KeyRefreshToken = "lucas_refresh_token"
	KeyUser         = "lucas_auth_user"
)

// AuthState is the locally held session: the bearer access token, the refresh
// token it can be exchanged with, and the signed-in member.
type AuthState struct {
	Token        string             `json:"token"`
	RefreshToken string             `json:"refreshToken"`
	User         *users.UserProfile `json:"user"`
}

// IsAuthenticated requires both a token and a user.
func (a AuthState) IsAuthenticated() bool {
	return a.Token != "" && a.User != nil
}

func (a AuthState) clone() AuthState {
	if a.User != nil {
		u := *a.User
		a.User = &u
	}
	return a
}
