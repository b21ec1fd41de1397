package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/inkwell-blog/inkwell-api/errs"
)

const maxBodyBytes = 1 << 20

// Decode reads exactly one JSON object from the request body into dst.
// Fields dst does not declare are rejected, never silently dropped.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	err := decode(w, r, dst)
	if errors.Is(err, io.EOF) {
		return errs.NewFieldError(errs.FieldBody, "Request body is required")
	}
	return err
}

// DecodeOptional is Decode for endpoints where an empty body is allowed.
func DecodeOptional(w http.ResponseWriter, r *http.Request, dst any) error {
	err := decode(w, r, dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return io.EOF
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return decodeError(err)
	}
	if dec.More() {
		return errs.NewFieldError(errs.FieldBody, "Request body must contain a single JSON object")
	}
	return nil
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return errs.NewFieldError(errs.FieldBody, "Malformed JSON")
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return errs.NewFieldError(errs.FieldBody, "Request body must be a JSON object")
		}
		field := strings.SplitN(typeErr.Field, ".", 2)[0]
		return errs.NewFieldError(errs.KnownField(field),
			fmt.Sprintf("Invalid input: expected %s, received %s", jsonKind(typeErr.Type), typeErr.Value))
	case errors.As(err, &maxErr):
		return errs.NewFieldError(errs.FieldBody, "Request body too large")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		name := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return errs.NewFieldError(errs.FieldBody, "Unknown field "+name)
	default:
		return errs.NewFieldError(errs.FieldBody, "Malformed request body")
	}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.String()
	}
}
