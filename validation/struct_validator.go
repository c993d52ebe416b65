package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/mapkit/errors"
)

var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return v
})

// jsonFieldName names fields in error paths the way clients send them.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// Validate checks s against its `validate` struct tags. Field paths in the
// error drop the root type, e.g. "center.latitude" or "path[1].longitude".
func Validate(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed").WithCause(err)
	}

	v := New()
	for _, fe := range fieldErrs {
		_, path, found := strings.Cut(fe.Namespace(), ".")
		if !found {
			path = fe.Namespace()
		}
		v.AddError(path, describe(fe))
	}
	return v.Validate()
}

func describe(fe validator.FieldError) string {
	p := fe.Param()
	list := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if list {
			return "must contain at least " + p + " items"
		}
		return "must be at least " + p
	case "max":
		if list {
			return "must contain at most " + p + " items"
		}
		return "must be at most " + p
	case "gt":
		return "must be greater than " + p
	case "gte":
		return "must be greater than or equal to " + p
	case "lte":
		return "must be less than or equal to " + p
	case "oneof":
		return "must be one of: " + p
	}
	return "is invalid"
}
