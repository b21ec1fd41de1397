package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/inkwell-blog/inkwell-api/errs"
)

var (
	fullNamePattern = regexp.MustCompile(`^[A-Za-z]+( [A-Za-z]+)+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "fullname", func(fl validator.FieldLevel) bool {
		return fullNamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return ValidUsername(fl.Field().String())
	})
	// omitempty keeps a non-nil pointer to "" in play, so optional URL fields
	// accept the blank value here.
	mustRegister(v, "url_or_empty", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || v.Var(s, "url") == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidUsername reports whether s is made only of letters, digits and underscores.
func ValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// messages maps "<field>.<rule>" to the text shown next to the form field.
var messages = map[string]string{
	"title.min":               "Title should be at least 4 characters long",
	"title.max":               "Title cannot be longer than 100 characters",
	"excerpt.min":             "Blog summary should be at least 10 characters long",
	"excerpt.max":             "Blog summary cannot be longer than 500 characters",
	"content.required":        "Blog content cannot be empty",
	"coverImage.url_or_empty": "Cover image must be a valid URL",
	"published.required":      "Published status is required",
	"tags.required":           "Tags are required",

	"postId.required": "Post id is required",
	"postId.uuid":     "Invalid post id",

	"id.required":          "Id is required",
	"name.min":             "Fullname should contain at least 4 characters",
	"name.fullname":        "Enter a valid full name",
	"username.required":    "Username is required",
	"username.username":    "Username can contain only letters, numbers and _",
	"email.required":       "Email is required",
	"email.email":          "Invalid email address",
	"website.url_or_empty": "Invalid URL",
	"bio.max":              "Bio cannot be longer than 180 characters",
}

// commentMessages overrides the shared table where a comment reads differently
// from a post.
var commentMessages = map[string]string{
	"content.required": "Comment cannot be empty",
}

// Validate runs the struct rules on v and converts failures into
// errs.FieldErrors. Only the first failing rule of each field is reported.
func Validate(v any) error {
	return validateWith(v, nil)
}

func validateWith(v any, overrides map[string]string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := errs.FieldErrors{}
	for _, e := range verrs {
		fe.Add(errs.KnownField(e.Field()), message(e, overrides))
	}
	return fe.OrNil()
}

func message(e validator.FieldError, overrides map[string]string) string {
	key := e.Field() + "." + e.Tag()
	if msg, ok := overrides[key]; ok {
		return msg
	}
	if msg, ok := messages[key]; ok {
		return msg
	}
	return "Invalid value"
}
