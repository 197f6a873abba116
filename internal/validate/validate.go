// Package validate holds the input rules shared by the authentication and
// profile workflows.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/dtroode/eventhub-auth/internal/model"
)

// emailPattern accepts local@domain.tld where no part holds whitespace or a
// second '@'.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// IsValidEmail reports whether s has the local@domain.tld shape.
func IsValidEmail(s string) bool {
	return validation.Validate(s, validation.Required, validation.Match(emailPattern)) == nil
}

const (
	// MinPasswordLength is counted in runes.
	MinPasswordLength = 8
	// SpecialCharacters lists the characters accepted by the special character rule.
	SpecialCharacters = `!@#$%^&*(),.?":{}|<>`
	// MinUsernameLength applies to profile updates.
	MinUsernameLength = 3
)

// Password policy messages, in rule order.
const (
	MsgPasswordLength    = "Le mot de passe doit contenir au moins 8 caractères"
	MsgPasswordUppercase = "Le mot de passe doit contenir au moins une majuscule"
	MsgPasswordLowercase = "Le mot de passe doit contenir au moins une minuscule"
	MsgPasswordDigit     = "Le mot de passe doit contenir au moins un chiffre"
	MsgPasswordSpecial   = "Le mot de passe doit contenir au moins un caractère spécial"
)

var (
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	lowercasePattern = regexp.MustCompile(`[a-z]`)
	digitPattern     = regexp.MustCompile(`[0-9]`)
)

// passwordRules run in order and never stop at the first failure.
var passwordRules = []validation.Rule{
	passwordRule(MsgPasswordLength, func(s string) bool {
		return utf8.RuneCountInString(s) >= MinPasswordLength
	}),
	passwordRule(MsgPasswordUppercase, uppercasePattern.MatchString),
	passwordRule(MsgPasswordLowercase, lowercasePattern.MatchString),
	passwordRule(MsgPasswordDigit, digitPattern.MatchString),
	passwordRule(MsgPasswordSpecial, func(s string) bool {
		return strings.ContainsAny(s, SpecialCharacters)
	}),
}

// passwordRule builds a rule that also runs on empty input, unlike the
// built-in ozzo rules.
func passwordRule(message string, ok func(string) bool) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if !ok(s) {
			return errors.New(message)
		}
		return nil
	})
}

// PasswordResult is the outcome of the password policy check.
type PasswordResult struct {
	Valid  bool
	Errors []string
}

// IsValidPassword checks every policy rule and collects one message per
// violated rule.
func IsValidPassword(password string) PasswordResult {
	var violations []string
	for _, rule := range passwordRules {
		if err := rule.Validate(password); err != nil {
			violations = append(violations, err.Error())
		}
	}

	return PasswordResult{
		Valid:  len(violations) == 0,
		Errors: violations,
	}
}

// ProfilePatch validates the fields the patch provides. Provided but empty
// values are not checked.
func ProfilePatch(p model.ProfilePatch) error {
	if p.Username != nil {
		err := validation.Validate(*p.Username, validation.RuneLength(MinUsernameLength, 0))
		if err != nil {
			return model.ErrUsernameTooShort
		}
	}

	if p.Email != nil {
		err := validation.Validate(*p.Email, validation.Match(emailPattern))
		if err != nil {
			return model.ErrInvalidEmail
		}
	}

	return nil
}
