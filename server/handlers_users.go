package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	truedeverrors "github.com/jrsteele09/truedev-client/internal/errors"
	"github.com/jrsteele09/truedev-client/users"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *Server) SignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in signupRequest
		form, err := readMultipart(r, partUser, &in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		in.Email = strings.TrimSpace(in.Email)
		if err := users.ValidateSignup(in.Email, in.Password, in.Password, in.Name); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := s.repos.Users.GetByEmail(in.Email); err == nil {
			writeMessage(w, http.StatusConflict, MessageDuplicateEmail)
			return
		}

		hash, err := users.HashPassword(in.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}
		user := &users.User{
			Email:        in.Email,
			Name:         in.Name,
			PasswordHash: hash,
			DateJoined:   time.Now(),
		}
		if upload, _ := imageUpload(form); upload != nil {
			if user.ProfileImage, err = s.images.save(upload); err != nil {
				writeError(w, r, err)
				return
			}
		}
		if err := s.repos.Users.Upsert(user); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusCreated, user.Profile())
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type loginUser struct {
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	ProfileImage string `json:"profileImage"`
}

type loginResponse struct {
	Token tokenPair `json:"token"`
	User  loginUser `json:"user"`
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in loginRequest
		if err := readJSON(r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		user, err := s.repos.Users.GetByEmail(strings.TrimSpace(in.Email))
		if err != nil || !user.CheckPassword(in.Password) {
			writeMessage(w, http.StatusUnauthorized, MessageInvalidCredentials)
			return
		}

		pair, err := s.issueTokens(user)
		if err != nil {
			writeError(w, r, err)
			return
		}
		user.LoggedIn = true
		user.LastLogin = time.Now()
		if err := s.repos.Users.Upsert(user); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, loginResponse{
			Token: pair,
			User: loginUser{
				UserName:     user.Name,
				UserEmail:    user.Email,
				ProfileImage: user.ProfileImage,
			},
		})
	}
}

func (s *Server) issueTokens(user *users.User) (tokenPair, error) {
	access, err := s.tokens.CreateAccessToken(user)
	if err != nil {
		return tokenPair{}, err
	}
	refreshToken, err := s.refresh.Create(user.ID)
	if err != nil {
		return tokenPair{}, err
	}
	return tokenPair{AccessToken: access, RefreshToken: refreshToken}, nil
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.repos.Users.GetByID(userID(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.refresh.DeleteForUser(user.ID); err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.repos.Users.SetLoggedIn(user.Email, false); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, nil)
	}
}

// TokenRefreshHandler swaps the refresh token in the Refresh-Token header for
// a new access and refresh token pair.
func (s *Server) TokenRefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearer(r.Header.Get("Refresh-Token"))
		if !ok {
			writeMessage(w, http.StatusUnauthorized, MessageInvalidRefreshToken)
			return
		}
		id, next, err := s.refresh.Rotate(raw)
		if err != nil {
			if !errors.Is(err, truedeverrors.ErrInvalidRefreshToken) {
				logError(r.Method, r.URL.Path, err)
			}
			writeMessage(w, http.StatusUnauthorized, MessageInvalidRefreshToken)
			return
		}
		user, err := s.repos.Users.GetByID(id)
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, MessageInvalidRefreshToken)
			return
		}
		access, err := s.tokens.CreateAccessToken(user)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, tokenPair{AccessToken: access, RefreshToken: next})
	}
}

type accountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type accountResponse struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
}

func (s *Server) UpdateAccountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.repos.Users.GetByID(userID(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		var in accountRequest
		form, err := readMultipart(r, partUser, &in)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if name := strings.TrimSpace(in.Name); name != "" {
			if err := users.ValidateNickname(name); err != nil {
				writeMessage(w, http.StatusBadRequest, err.Error())
				return
			}
			user.Name = name
		}
		if email := strings.TrimSpace(in.Email); email != "" && email != user.Email {
			if err := users.ValidateEmail(email); err != nil {
				writeMessage(w, http.StatusBadRequest, err.Error())
				return
			}
			if _, err := s.repos.Users.GetByEmail(email); err == nil {
				writeMessage(w, http.StatusConflict, MessageDuplicateEmail)
				return
			}
			user.Email = email
		}
		upload, remove := imageUpload(form)
		switch {
		case upload != nil:
			if user.ProfileImage, err = s.images.save(upload); err != nil {
				writeError(w, r, err)
				return
			}
		case remove:
			user.ProfileImage = ""
		}

		if err := s.repos.Users.Upsert(user); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, accountResponse{
			Name:         user.Name,
			Email:        user.Email,
			ProfileImage: user.ProfileImage,
		})
	}
}

func (s *Server) DeleteAccountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.repos.Users.GetByID(userID(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.refresh.DeleteForUser(user.ID); err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.repos.Users.Delete(user.Email); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, nil)
	}
}

// ChangePasswordHandler reads both passwords from the query string. A wrong
// current password is a 400, not a 401, so it is never mistaken for an
// expired session.
func (s *Server) ChangePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.repos.Users.GetByID(userID(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		current := r.URL.Query().Get("currentPassword")
		next := r.URL.Query().Get("newPassword")
		if err := users.ValidatePassword(next); err != nil {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		if !user.CheckPassword(current) {
			writeMessage(w, http.StatusBadRequest, MessageCurrentPasswordWrong)
			return
		}
		if current == next {
			writeMessage(w, http.StatusBadRequest, MessagePasswordDuplicated)
			return
		}

		if user.PasswordHash, err = users.HashPassword(next); err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.repos.Users.Upsert(user); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, nil)
	}
}
