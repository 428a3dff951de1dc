package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Number, Integer and Boolean accept both native JSON values and their
// string forms ("4.50", "30", "1"), matching what a multipart form sends.
// They also satisfy gin's BindUnmarshaler so form binding parses them the
// same way.
type (
	Number  float64
	Integer int
	Boolean bool
)

var (
	errNotNumber  = errors.New("not a number")
	errNotInteger = errors.New("not an integer")
	errNotBoolean = errors.New("not a boolean")
)

// textOf returns the raw text of a JSON string or number literal.
func textOf(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	}
	return string(data), true
}

func typeError(data []byte, target interface{}) error {
	return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(target)}
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumber
	}
	return f, nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	s, ok := textOf(data)
	if !ok {
		return typeError(data, Number(0))
	}
	f, err := parseNumber(s)
	if err != nil {
		return typeError(data, Number(0))
	}
	*n = Number(f)
	return nil
}

func (n *Number) UnmarshalParam(param string) error {
	f, err := parseNumber(param)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Float returns a float64 pointer, or nil for nil.
func (n *Number) Float() *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}

func parseInteger(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errNotInteger
	}
	return i, nil
}

func (i *Integer) UnmarshalJSON(data []byte) error {
	s, ok := textOf(data)
	if !ok {
		return typeError(data, Integer(0))
	}
	v, err := parseInteger(s)
	if err != nil {
		return typeError(data, Integer(0))
	}
	*i = Integer(v)
	return nil
}

func (i *Integer) UnmarshalParam(param string) error {
	v, err := parseInteger(param)
	if err != nil {
		return err
	}
	*i = Integer(v)
	return nil
}

func parseBoolean(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no":
		return false, nil
	}
	return false, errNotBoolean
}

func (b *Boolean) UnmarshalJSON(data []byte) error {
	s, ok := textOf(data)
	if !ok {
		return typeError(data, Boolean(false))
	}
	v, err := parseBoolean(s)
	if err != nil {
		return typeError(data, Boolean(false))
	}
	*b = Boolean(v)
	return nil
}

func (b *Boolean) UnmarshalParam(param string) error {
	v, err := parseBoolean(param)
	if err != nil {
		return err
	}
	*b = Boolean(v)
	return nil
}

// kindMessage describes the expected shape of a flexible field type.
func kindMessage(t reflect.Type, field string) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t {
	case reflect.TypeOf(Number(0)):
		return "The " + label(field) + " field must be a number."
	case reflect.TypeOf(Integer(0)):
		return "The " + label(field) + " field must be an integer."
	case reflect.TypeOf(Boolean(false)):
		return "The " + label(field) + " field must be true or false."
	}
	return "The " + label(field) + " field must be of type " + t.String() + "."
}
