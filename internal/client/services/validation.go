package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("validation failed")

// FieldError names one rejected input field.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (f FieldError) String() string {
	switch f.Rule {
	case "required":
		return f.Field + " is required"
	case "email":
		return f.Field + " must be a valid email address"
	case "url":
		return f.Field + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", f.Field, f.Param)
	case "len":
		return fmt.Sprintf("%s must have length %s", f.Field, f.Param)
	case "min":
		return fmt.Sprintf("%s must be at least %s", f.Field, f.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", f.Field, f.Param)
	case "gte", "lte":
		return f.Field + " is out of range"
	case "numeric":
		return f.Field + " must be numeric"
	}
	return fmt.Sprintf("%s failed %s", f.Field, f.Rule)
}

// ValidationError lists every invalid field of a form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// check runs v on in, skipping the named fields, and converts failures into a
// *ValidationError.
func check(v *validator.Validate, in any, skip ...string) error {
	var err error
	if len(skip) > 0 {
		err = v.StructExcept(in, skip...)
	} else {
		err = v.Struct(in)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}
