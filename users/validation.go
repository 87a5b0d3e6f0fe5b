package users

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrRequiredField        = errors.New("required field missing")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrLoginPasswordLength  = errors.New("password must be 4 to 18 characters")
	ErrPasswordLength       = errors.New("password must be 8 to 72 characters")
	ErrNicknameLength       = errors.New("nickname must be 2 to 20 characters")
	ErrPasswordConfirmation = errors.New("passwords do not match")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidateEmail(email string) error {
	if email == "" {
		return ErrRequiredField
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateLoginPassword applies the looser length range accepted on the login form.
func ValidateLoginPassword(password string) error {
	return lengthBetween(password, 4, 18, ErrLoginPasswordLength)
}

// ValidatePassword applies the range required for new passwords (bcrypt caps at 72 bytes).
func ValidatePassword(password string) error {
	return lengthBetween(password, 8, 72, ErrPasswordLength)
}

func ValidateNickname(name string) error {
	return lengthBetween(name, 2, 20, ErrNicknameLength)
}

// ValidateLogin checks the login form fields in the order they are shown.
func ValidateLogin(email, password string) error {
	if email == "" || password == "" {
		return ErrRequiredField
	}
	if err := ValidateEmail(strings.TrimSpace(email)); err != nil {
		return err
	}
	return ValidateLoginPassword(password)
}

// ValidateSignup checks the signup form fields in the order they are shown.
func ValidateSignup(email, password, confirm, name string) error {
	if email == "" || password == "" || name == "" {
		return ErrRequiredField
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirm {
		return ErrPasswordConfirmation
	}
	return ValidateNickname(name)
}

func ValidatePasswordChange(current, next, confirm string) error {
	if current == "" || next == "" || confirm == "" {
		return ErrRequiredField
	}
	for _, p := range []string{current, next, confirm} {
		if err := ValidatePassword(p); err != nil {
			return err
		}
	}
	if next != confirm {
		return ErrPasswordConfirmation
	}
	return nil
}

func lengthBetween(s string, min, max int, err error) error {
	n := utf8.RuneCountInString(s)
	if n < min || n > max {
		return err
	}
	return nil
}
