// Package validator collects field-level validation failures.
//
// Two flavours are provided:
//   - Validator accumulates domain rule failures into a field -> message map
//   - RegisterBindingValidations / BindingErrors plug into gin's binding engine
//     (go-playground/validator) for request shape checks
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

// Validator holds field names and their first failure message.
// A Validator with no errors is valid.
type Validator struct {
	Errors map[string]string
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no failure was recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records message for key unless key already failed.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check records message for key when ok is false.
//
//	v.Check(price >= 0, "price", "must be greater than or equal to 0")
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// =========================================
// gin binding integration
// =========================================

var registerOnce sync.Once

// RegisterBindingValidations makes gin's default validator name fields after
// their json (or form, uri) tag. Safe to call more than once.
func RegisterBindingValidations() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*playground.Validate)
		if !ok {
			err = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
	})
	return err
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// BindingErrors converts go-playground validation errors into field messages.
// ok is false when err is not a validation error (e.g. malformed JSON).
func BindingErrors(err error) (fields map[string]string, ok bool) {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	fields = make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, exists := fields[name]; exists {
			continue
		}
		fields[name] = bindingMessage(fe)
	}
	return fields, true
}

func bindingMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be provided"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}
