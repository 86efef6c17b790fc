// Package validation turns struct-tag and ad-hoc field checks into field-level errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is the sentinel every validation failure unwraps to.
var ErrInvalid = errors.New("validation failed")

// Error carries field-level messages keyed by field name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrInvalid.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return ErrInvalid.Error() + ": " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return ErrInvalid }

// Fields extracts the field messages from err when it wraps an *Error.
func Fields(err error) (map[string]string, bool) {
	var verr *Error
	if errors.As(err, &verr) && verr != nil {
		return verr.Fields, true
	}
	return nil, false
}

// Collector accumulates field errors across several checks.
type Collector struct {
	fields map[string]string
}

// Add records msg for field unless the field already failed.
func (c *Collector) Add(field, msg string) {
	if c.fields == nil {
		c.fields = map[string]string{}
	}
	if _, exists := c.fields[field]; !exists {
		c.fields[field] = msg
	}
}

// Check records msg for field when ok is false.
func (c *Collector) Check(ok bool, field, msg string) {
	if !ok {
		c.Add(field, msg)
	}
}

// Merge folds the fields of err into the collector, prefixing each with prefix.
// Errors that are not validation errors are ignored.
func (c *Collector) Merge(prefix string, err error) {
	fields, ok := Fields(err)
	if !ok {
		return
	}
	for field, msg := range fields {
		c.Add(prefix+field, msg)
	}
}

// Err returns the accumulated *Error, or nil when every check passed.
func (c *Collector) Err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &Error{Fields: c.fields}
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(fieldName)
	})
	return validate
}

// Struct validates the `validate` tags of v and returns an *Error listing every failing field.
func Struct(v any) error {
	var c Collector
	StructInto(&c, v)
	return c.Err()
}

// StructInto validates the `validate` tags of v and records failures on c.
func StructInto(c *Collector, v any) {
	err := instance().Struct(v)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		c.Add("_", err.Error())
		return
	}
	for _, fe := range fieldErrs {
		c.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "url":
		return "must be a valid URL"
	case "http_url":
		return "must be an absolute http(s) URL"
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// fieldName prefers the json tag and falls back to the lower-camel Go field name
// (ImageURL becomes imageUrl, CategoryID becomes categoryId).
func fieldName(fld reflect.StructField) string {
	if tag := strings.Split(fld.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
		return tag
	}
	name := strings.ReplaceAll(fld.Name, "URL", "Url")
	if strings.HasSuffix(name, "ID") {
		name = strings.TrimSuffix(name, "ID") + "Id"
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}
