package validator

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidAPIKey   = errors.New("invalid api key")
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	apiKeyRegex   = regexp.MustCompile(`^[a-zA-Z0-9_-]{8,100}$`)
)

func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

func ValidateAPIKey(apiKey string) error {
	if !apiKeyRegex.MatchString(apiKey) {
		return ErrInvalidAPIKey
	}
	return nil
}
