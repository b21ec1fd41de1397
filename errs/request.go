package errs

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

var (
	Unauthorized = NewApiErr(http.StatusUnauthorized, "Unauthorized")
)

// Request & Input-Validation Errors
var (
	ErrInvalidField = errors.New("invalid field")
)

// Field names a request field that can carry a validation message. The set is
// closed: anything the client sends outside it is reported under FieldBody.
type Field string

const (
	FieldBody          Field = "body"
	FieldTitle         Field = "title"
	FieldExcerpt       Field = "excerpt"
	FieldContent       Field = "content"
	FieldCoverImage    Field = "coverImage"
	FieldPublished     Field = "published"
	FieldTags          Field = "tags"
	FieldPublishStatus Field = "publishStatus"
	FieldPostID        Field = "postId"
	FieldID            Field = "id"
	FieldName          Field = "name"
	FieldUsername      Field = "username"
	FieldEmail         Field = "email"
	FieldImage         Field = "image"
	FieldWebsite       Field = "website"
	FieldBio           Field = "bio"
)

var knownFields = map[Field]bool{
	FieldBody: true, FieldTitle: true, FieldExcerpt: true, FieldContent: true,
	FieldCoverImage: true, FieldPublished: true, FieldTags: true, FieldPublishStatus: true,
	FieldPostID: true, FieldID: true, FieldName: true, FieldUsername: true,
	FieldEmail: true, FieldImage: true, FieldWebsite: true, FieldBio: true,
}

// KnownField converts a wire field name to a Field, falling back to FieldBody.
func KnownField(name string) Field {
	if f := Field(name); knownFields[f] {
		return f
	}
	return FieldBody
}

// FieldErrors is a validation failure: one message per offending field. It is
// always written as a flat JSON object with status 400.
type FieldErrors map[Field]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[Field(k)])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (fe FieldErrors) Unwrap() error {
	return ErrInvalidField
}

// Add records msg for field unless the field already has a message, so the
// first failing rule wins.
func (fe FieldErrors) Add(field Field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// OrNil returns nil when no field failed.
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func NewFieldError(field Field, msg string) FieldErrors {
	return FieldErrors{field: msg}
}

func IsInvalidFieldError(err error) bool {
	return errors.Is(err, ErrInvalidField)
}
