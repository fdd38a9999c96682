package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// IssueCode tags why a field was rejected.
type IssueCode string

const (
	IssueMissingField  IssueCode = "missing_field"
	IssueWrongType     IssueCode = "wrong_type"
	IssueInvalidFormat IssueCode = "invalid_format"
)

// FieldIssue describes one rejected field.
type FieldIssue struct {
	Field   string    `json:"field"`
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
}

// ValidationError collects the issues found in a request.
type ValidationError struct {
	Issues []FieldIssue `json:"issues"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Code))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add records an issue.
func (e *ValidationError) Add(field string, code IssueCode, message string) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Code: code, Message: message})
}

// OrNil returns the error only if at least one issue was recorded.
func (e *ValidationError) OrNil() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

var validate = newValidator()

// newValidator reports fields under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the `validate` tags of s and converts the failures into
// a *ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var v ValidationError
	for _, fe := range fieldErrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			v.Add(field, IssueMissingField, field+" is required")
		case "email":
			v.Add(field, IssueInvalidFormat, field+" must be a valid email address")
		default:
			v.Add(field, IssueInvalidFormat, fmt.Sprintf("%s failed the %s rule", field, fe.Tag()))
		}
	}
	return v.OrNil()
}

// DecodeJSON decodes a request body holding exactly one JSON value into dst.
// Decoding failures come back as a *ValidationError so callers can treat them
// like any other rejected field.
func DecodeJSON(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	err := dec.Decode(dst)
	if err == nil {
		var extra json.RawMessage
		if dec.Decode(&extra) != io.EOF {
			var v ValidationError
			v.Add("body", IssueInvalidFormat, "request body must contain a single JSON value")
			return &v
		}
		return nil
	}

	var v ValidationError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		v.Add(field, IssueWrongType, fmt.Sprintf("%s must be of type %s", field, typeErr.Type))
	case errors.Is(err, io.EOF):
		v.Add("body", IssueMissingField, "request body is required")
	default:
		v.Add("body", IssueInvalidFormat, "request body is not valid JSON")
	}
	return &v
}

// ParseID validates a meal id taken from the URL.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		var v ValidationError
		v.Add("id", IssueInvalidFormat, "id must be a UUID")
		return "", &v
	}
	return id.String(), nil
}
