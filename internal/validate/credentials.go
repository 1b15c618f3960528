package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type registration struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type login struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// credentialMessages maps "field.tag" to the message shown to the user.
var credentialMessages = map[string]string{
	"username.required": "Username must be 3-50 characters",
	"username.min":      "Username must be 3-50 characters",
	"username.max":      "Username must be 3-50 characters",
	"username.username": "Username can only contain letters, numbers, underscores, and hyphens",
	"password.required": "Password must be at least 8 characters long",
	"password.min":      "Password must be at least 8 characters long",
	"password.max":      "Password must not exceed 72 bytes",
}

var loginMessages = map[string]string{
	"username.required": "Username is required",
	"password.required": "Password is required",
}

var credentialValidator = newCredentialValidator()

func newCredentialValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// Registration validates a new account's credentials. The username is
// trimmed; the password is taken verbatim.
func Registration(username, password string) (domain.Credentials, error) {
	in := registration{Username: strings.TrimSpace(username), Password: password}
	if err := check(in, credentialMessages); err != nil {
		return domain.Credentials{}, err
	}
	return domain.Credentials{Username: in.Username, Password: in.Password}, nil
}

// Login validates that both login fields are present.
func Login(username, password string) (domain.Credentials, error) {
	in := login{Username: strings.TrimSpace(username), Password: password}
	if err := check(in, loginMessages); err != nil {
		return domain.Credentials{}, err
	}
	return domain.Credentials{Username: in.Username, Password: in.Password}, nil
}

// check reports the first failing field with its mapped message.
func check(in any, messages map[string]string) error {
	err := credentialValidator.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	msg, ok := messages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg = "Invalid " + fe.Field()
	}
	return domain.NewValidationError(fe.Field(), msg)
}
