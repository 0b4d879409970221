package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors carries every failed field rule of a single validation pass.
type Errors struct {
	Messages []string
}

func (e *Errors) Error() string {
	if e == nil || len(e.Messages) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func NewErrors(messages ...string) *Errors {
	return &Errors{Messages: messages}
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("integer", isInteger)
	return &Validator{v: v}
}

// isInteger accepts whole numbers, including floats such as 5.0 decoded from JSON.
func isInteger(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		v := f.Float()
		return !math.IsInf(v, 0) && v == math.Trunc(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// Struct validates s against its `validate` tags. Rule failures come back as
// *Errors holding one message per failing field, in declaration order.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &Errors{Messages: make([]string, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Messages = append(out.Messages, message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "integer":
		return fmt.Sprintf("%s must be an integer", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "url", "uri":
		return fmt.Sprintf("%s must be a valid uri", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(strings.Fields(param), ", "))
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s length must be at least %s characters long", field, param)
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s must contain at least %s items", field, param)
		default:
			return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
		}
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, param)
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s must contain less than or equal to %s items", field, param)
		default:
			return fmt.Sprintf("%s must be less than or equal to %s", field, param)
		}
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
