package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserProfile is the public view of a member. The client treats it as opaque
// and passes it through to the session store unchanged.
type UserProfile struct {
	UserName     string `json:"userName"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// User is the account record kept by the development backend.
type User struct {
	ID           string    `json:"id,omitempty"`           // Unique identifier for the user
	Email        string    `json:"email,omitempty"`        // Login email, unique
	Name         string    `json:"name,omitempty"`         // Nickname shown on the board
	PasswordHash string    `json:"-"`                      // Never serialize
	ProfileImage string    `json:"profileImage,omitempty"` // URL of the uploaded avatar
	DateJoined   time.Time `json:"date_joined,omitempty"`  // Date and time when the user registered
	LastLogin    time.Time `json:"last_login,omitempty"`   // Last time the user logged in
	LoggedIn     bool      `json:"loggedIn,omitempty"`     // Is the user currently logged in
}

// Profile returns the public view of u.
func (u *User) Profile() UserProfile {
	return UserProfile{
		UserName:     u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword checks a password against the user's stored hash
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}
