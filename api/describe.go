package api

import (
	"errors"
	"net/http"

	"github.com/jrsteele09/truedev-client/client"
)

var knownMessages = map[string]string{
	client.MessageInvalidCredentials: "The email or password is incorrect.",
	"currentPassword_unauthorized":   "The current password is incorrect.",
	"password_duplicated":            "The new password is the same as the current one.",
	"already_liked":                  "You have already liked this post.",
	"email_duplicated":               "An account with this email already exists.",
	"token_expired":                  "Your session has expired. Please log in again.",
	"not_found":                      "It no longer exists.",
	"forbidden":                      "You are not allowed to do that.",
}

// DescribeError turns an error from this package into a short message for
// the user. Unknown backend messages are returned as they are.
func DescribeError(err error) string {
	if err == nil {
		return ""
	}
	if client.IsConnectivity(err) {
		return client.ConnectivityMessage
	}

	var reqErr *client.RequestError
	if !errors.As(err, &reqErr) {
		return err.Error()
	}
	if msg, ok := knownMessages[reqErr.Message]; ok {
		return msg
	}
	if reqErr.Status == http.StatusConflict {
		return knownMessages["already_liked"]
	}
	if reqErr.Message == client.GenericFailureMessage {
		return "The request failed. Please try again later."
	}
	return reqErr.Message
}
