package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dailypush/dailypush/internal/domain"
	"github.com/dailypush/dailypush/internal/errors"
	"github.com/go-playground/validator/v10"
)

const passwordSpecials = "#$@!%&*?"

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]+$`)
	passwordCharset = regexp.MustCompile(`^[A-Za-z0-9#$@!%&*?]+$`)
	hasLower        = regexp.MustCompile(`[a-z]`)
	hasUpper        = regexp.MustCompile(`[A-Z]`)
	hasDigit        = regexp.MustCompile(`[0-9]`)
	hasSpecial      = regexp.MustCompile(`[#$@!%&*?]`)
)

type Limits struct {
	UsernameMinLen  int
	UsernameMaxLen  int
	PasswordMinLen  int
	PasswordMaxLen  int
	TopicNameMaxLen int
	PostTitleMaxLen int
}

var DefaultLimits = Limits{
	UsernameMinLen:  3,
	UsernameMaxLen:  50,
	PasswordMinLen:  8,
	PasswordMaxLen:  64,
	TopicNameMaxLen: 100,
	PostTitleMaxLen: 100,
}

// Validator checks user input. Every failure is a 400 carrying a message fit for the user.
type Validator struct {
	limits Limits
}

func New(limits Limits) *Validator {
	return &Validator{limits: limits}
}

func (v *Validator) Username(username domain.Username) error {
	n := utf8.RuneCountInString(username)
	switch {
	case n == 0:
		return errors.Validation("Username is required.")
	case n < v.limits.UsernameMinLen || n > v.limits.UsernameMaxLen:
		return errors.Validation(fmt.Sprintf("Username must be between %d and %d characters long.", v.limits.UsernameMinLen, v.limits.UsernameMaxLen))
	case !IsUsername(username):
		return errors.Validation("Username must start with a letter and may contain only letters, numbers, dashes or underscores.")
	}
	return nil
}

func (v *Validator) Password(password domain.Password) error {
	n := utf8.RuneCountInString(password)
	switch {
	case n == 0:
		return errors.Validation("Password is required.")
	case n < v.limits.PasswordMinLen || n > v.limits.PasswordMaxLen:
		return errors.Validation(fmt.Sprintf("Password must be between %d and %d characters long.", v.limits.PasswordMinLen, v.limits.PasswordMaxLen))
	case !IsStrongPassword(password):
		return errors.Validation(fmt.Sprintf("Password must contain at least one lowercase letter, one uppercase letter, one number and one of %s, and nothing else.", passwordSpecials))
	}
	return nil
}

func (v *Validator) Confirmation(password, confirmation domain.Password) error {
	if password != confirmation {
		return errors.Validation("Passwords must match.")
	}
	return nil
}

func (v *Validator) TopicName(name domain.TopicName) error {
	if strings.TrimSpace(name) == "" {
		return errors.Validation("Topic name is required.")
	}
	if utf8.RuneCountInString(name) > v.limits.TopicNameMaxLen {
		return errors.Validation(fmt.Sprintf("Topic name must be at most %d characters long.", v.limits.TopicNameMaxLen))
	}
	return nil
}

// PostTitle accepts a blank title.
func (v *Validator) PostTitle(title domain.PostTitle) error {
	if utf8.RuneCountInString(title) > v.limits.PostTitleMaxLen {
		return errors.Validation(fmt.Sprintf("Post title must be at most %d characters long.", v.limits.PostTitleMaxLen))
	}
	return nil
}

func (v *Validator) PostBody(body domain.PostBody) error {
	if strings.TrimSpace(body) == "" {
		return errors.Validation("Post text is required.")
	}
	return nil
}

func IsUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// IsStrongPassword checks composition only, length is checked by the caller.
func IsStrongPassword(s string) bool {
	return passwordCharset.MatchString(s) &&
		hasLower.MatchString(s) &&
		hasUpper.MatchString(s) &&
		hasDigit.MatchString(s) &&
		hasSpecial.MatchString(s)
}

var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

// Struct checks the presence tags on request DTOs. Content rules live on
// Validator so that each failure carries its own message.
func Struct(s any) error {
	structValidatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return structValidator.Struct(s)
}
