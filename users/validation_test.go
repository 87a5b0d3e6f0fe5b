package users_test

import (
	"strings"
	"testing"

	"github.com/jrsteele09/truedev-client/users"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	require.NoError(t, users.ValidateEmail("dev@truedev.io"))
	require.ErrorIs(t, users.ValidateEmail(""), users.ErrRequiredField)
	require.ErrorIs(t, users.ValidateEmail("dev@truedev"), users.ErrInvalidEmail)
	require.ErrorIs(t, users.ValidateEmail("dev truedev@x.io"), users.ErrInvalidEmail)
}

func TestValidateLogin(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, users.ValidateLogin(" dev@truedev.io ", "abcd"))
	})

	t.Run("missing fields", func(t *testing.T) {
		require.ErrorIs(t, users.ValidateLogin("", "abcd"), users.ErrRequiredField)
	})

	t.Run("password too long", func(t *testing.T) {
		require.ErrorIs(t, users.ValidateLogin("dev@truedev.io", strings.Repeat("a", 19)), users.ErrLoginPasswordLength)
	})
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		confirm  string
		nickname string
		want     error
	}{
		{"valid", "dev@truedev.io", "password1", "password1", "dev", nil},
		{"missing name", "dev@truedev.io", "password1", "password1", "", users.ErrRequiredField},
		{"bad email", "dev", "password1", "password1", "dev", users.ErrInvalidEmail},
		{"short password", "dev@truedev.io", "short", "short", "dev", users.ErrPasswordLength},
		{"confirm mismatch", "dev@truedev.io", "password1", "password2", "dev", users.ErrPasswordConfirmation},
		{"short nickname", "dev@truedev.io", "password1", "password1", "d", users.ErrNicknameLength},
		{"hangul nickname counts runes", "dev@truedev.io", "password1", "password1", "개발", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := users.ValidateSignup(tc.email, tc.password, tc.confirm, tc.nickname)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidatePasswordChange(t *testing.T) {
	require.NoError(t, users.ValidatePasswordChange("password1", "password2", "password2"))
	require.ErrorIs(t, users.ValidatePasswordChange("password1", "password2", "password3"), users.ErrPasswordConfirmation)
	require.ErrorIs(t, users.ValidatePasswordChange("short", "password2", "password2"), users.ErrPasswordLength)
	require.ErrorIs(t, users.ValidatePasswordChange("", "password2", "password2"), users.ErrRequiredField)
}

func TestPasswordHash(t *testing.T) {
	hash, err := users.HashPassword("password1")
	require.NoError(t, err)

	u := &users.User{PasswordHash: hash}
	require.True(t, u.CheckPassword("password1"))
	require.False(t, u.CheckPassword("password2"))
}
