// Package validation turns request payloads into field -> messages reports.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a request field to its failure messages.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Any() bool { return len(e) > 0 }

// First returns the first message of the alphabetically first field.
func (e Errors) First() string {
	if len(e) == 0 {
		return ""
	}
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return e[fields[0]][0]
}

func (e Errors) Error() string {
	return e.First()
}

const maxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// bcrypt rejects secrets longer than 72 bytes.
	_ = v.RegisterValidation("bcrypt_len", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	v.RegisterStructValidation(registerRoleRules, RegisterRequest{})
	return v
}

// Struct validates s and returns nil or a populated Errors.
func Struct(s interface{}) Errors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"request": {err.Error()}}
	}
	out := Errors{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

// FromBindError reports a payload that could not be decoded. JSON type
// errors name their field; for form bodies the submitted values are
// re-parsed against target's field types to find the offending field.
func FromBindError(err error, form url.Values, target interface{}) Errors {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		return Errors{field: {kindMessage(typeErr.Type, field)}}
	}
	if errs := formErrors(form, target); errs.Any() {
		return errs
	}
	return Errors{"request": {"The request body could not be parsed."}}
}

type paramUnmarshaler interface {
	UnmarshalParam(param string) error
}

func formErrors(form url.Values, target interface{}) Errors {
	out := Errors{}
	if len(form) == 0 || target == nil {
		return out
	}
	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return out
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		value := form.Get(name)
		if name == "" || value == "" {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		u, ok := reflect.New(ft).Interface().(paramUnmarshaler)
		if !ok {
			continue
		}
		if err := u.UnmarshalParam(value); err != nil {
			out.Add(name, kindMessage(ft, name))
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "required_if":
		return fmt.Sprintf("The %s field is required when type is %s.", name, fe.Param())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", name)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", name, fe.Param())
	case "bcrypt_len":
		return fmt.Sprintf("The %s field must not be greater than %d bytes.", name, maxPasswordBytes)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", name)
	case "datetime":
		return fmt.Sprintf("The %s field must be a valid date.", name)
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	}
	return fmt.Sprintf("The %s field is invalid.", name)
}

func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
