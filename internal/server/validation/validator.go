// Package validation checks registration and login payloads and reports
// failures per field.
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to its violation messages.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	for _, m := range e[field] {
		if m == msg {
			return
		}
	}
	e[field] = append(e[field], msg)
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

// Fields returns field names in a stable order, for logging.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, f := range []string{"name", "email", "password"} {
		if _, ok := e[f]; ok {
			out = append(out, f)
		}
	}
	for f := range e {
		switch f {
		case "name", "email", "password":
		default:
			out = append(out, f)
		}
	}
	return out
}

// EmailChecker reports whether an email is already registered.
type EmailChecker interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type rule struct {
	tag string
	msg string
}

var (
	nameRules = []rule{
		{"max=255", msgMax},
	}
	emailRules = []rule{
		{"email", msgEmail},
		{"max=255", msgMax},
	}
	passwordRules = []rule{
		{"min=8", msgMin},
		{"lowercase_char", msgFormat},
		{"uppercase_char", msgFormat},
		{"digit_char", msgFormat},
	}
	loginEmailRules = []rule{
		{"email", msgEmail},
	}
)

const (
	msgRequired = "The %s field is required."
	msgString   = "The %s field must be a string."
	msgMax      = "The %s field must not be greater than 255 characters."
	msgEmail    = "The %s field must be a valid email address."
	msgMin      = "The %s field must be at least 8 characters."
	msgFormat   = "The %s field format is invalid."
	msgTaken    = "The %s has already been taken."
)

// Validator applies the credential rules. Each rule runs independently, so a
// value breaking several rules collects every message. An empty or blank
// value only gets the "required" message.
type Validator struct {
	v      *validator.Validate
	emails EmailChecker
}

func New(emails EmailChecker) *Validator {
	v := validator.New()
	mustRegister(v, "lowercase_char", inRange('a', 'z'))
	mustRegister(v, "uppercase_char", inRange('A', 'Z'))
	mustRegister(v, "digit_char", inRange('0', '9'))
	return &Validator{v: v, emails: emails}
}

// inRange matches ASCII classes only, so Cyrillic letters do not count.
func inRange(lo, hi rune) func(rune) bool {
	return func(r rune) bool { return r >= lo && r <= hi }
}

func mustRegister(v *validator.Validate, tag string, class func(rune) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return strings.ContainsFunc(fl.Field().String(), class)
	})
	if err != nil {
		panic(err)
	}
}

// ValidateRegister checks a registration payload, including whether the
// email is already taken. The error is non-nil only when the EmailChecker
// fails.
func (val *Validator) ValidateRegister(ctx context.Context, req models.RegisterRequest) (Errors, error) {
	errs := Errors{}

	val.check(errs, "name", req.Name, nameRules)
	emailOK := val.check(errs, "email", req.Email, emailRules)
	val.check(errs, "password", req.Password, passwordRules)

	if emailOK && val.emails != nil {
		taken, err := val.emails.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email uniqueness: %w", err)
		}
		if taken {
			errs.Add("email", Taken("email"))
		}
	}

	return errs, nil
}

// ValidateLogin checks a login payload. Passwords are held to the same
// composition rules as on registration.
func (val *Validator) ValidateLogin(req models.LoginRequest) Errors {
	errs := Errors{}
	val.check(errs, "email", req.Email, loginEmailRules)
	val.check(errs, "password", req.Password, passwordRules)
	return errs
}

// check reports whether value passed every rule.
func (val *Validator) check(errs Errors, field, value string, rules []rule) bool {
	if val.v.Var(strings.TrimSpace(value), "required") != nil {
		errs.Add(field, fmt.Sprintf(msgRequired, field))
		return false
	}
	ok := true
	for _, r := range rules {
		if val.v.Var(value, r.tag) != nil {
			errs.Add(field, fmt.Sprintf(r.msg, field))
			ok = false
		}
	}
	return ok
}

// NotString is the message for a field whose JSON value is not a string.
func NotString(field string) string {
	return fmt.Sprintf(msgString, field)
}

// Taken is the message for an email that is already registered.
func Taken(field string) string {
	return fmt.Sprintf(msgTaken, field)
}
