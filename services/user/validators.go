package user

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/api/iterator"
)

const allowedDomain = "ncsu.edu"

var localPartPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ValidateEmailDomain accepts only addresses with an alphanumeric local
// part and the ncsu.edu domain.
func ValidateEmailDomain(value string) error {
	parts := strings.Split(value, "@")
	if len(parts) != 2 {
		return errors.New("invalid email")
	}
	if !localPartPattern.MatchString(parts[0]) {
		return errors.New("invalid email")
	}
	if parts[1] != allowedDomain {
		return fmt.Errorf("email must be from the %s domain", allowedDomain)
	}
	return nil
}

var (
	lowercasePattern = regexp.MustCompile(`[a-z]`)
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	digitPattern     = regexp.MustCompile(`\d`)
	specialPattern   = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

var commonPasswords = []string{"password!123456", "12345678", "qwerty", "admin"}

// ValidatePassword enforces the signup password rules: 8-16 characters,
// mixed case, a digit, a special character, nothing from the common
// list, and no character repeated three or more times in a row.
func ValidatePassword(value string) error {
	if len(value) < 8 {
		return errors.New("password is too short")
	}
	if len(value) > 16 {
		return errors.New("password is too long")
	}
	if !lowercasePattern.MatchString(value) {
		return errors.New("password must contain at least one lowercase letter")
	}
	if !uppercasePattern.MatchString(value) {
		return errors.New("password must contain at least one uppercase letter")
	}
	if !digitPattern.MatchString(value) {
		return errors.New("password must contain at least one digit")
	}
	if !specialPattern.MatchString(value) {
		return errors.New("password must contain at least one special character")
	}
	for _, common := range commonPasswords {
		if strings.ToLower(value) == common {
			return errors.New("this password is too common, please choose a more unique password")
		}
	}
	if hasRepeatedRun(value) {
		return errors.New("password contains repeated characters, please avoid easily guessable patterns")
	}
	return nil
}

// hasRepeatedRun reports whether any rune appears three or more times
// in a row.
func hasRepeatedRun(value string) bool {
	runes := []rune(value)
	for i := 2; i < len(runes); i++ {
		if runes[i] == runes[i-1] && runes[i] == runes[i-2] {
			return true
		}
	}
	return false
}

func (s *service) validateUniqueUsername(ctx context.Context, username string) error {
	taken, err := s.exists(ctx, "username", username)
	if err != nil {
		return err
	}
	if taken {
		return errors.New("username must be unique")
	}
	return nil
}

func (s *service) validateUniqueUnityID(ctx context.Context, unityID string) error {
	taken, err := s.exists(ctx, "unityid", unityID)
	if err != nil {
		return err
	}
	if taken {
		return errors.New("unity ID must be unique")
	}
	return nil
}

func (s *service) exists(ctx context.Context, field, value string) (bool, error) {
	iter := s.db.Collection(collection).
		Where(field, "==", value).
		Limit(1).
		Documents(ctx)
	for {
		_, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
