package entity

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("field"); name != "" {
			return name
		}
		return lowerFirst(f.Name)
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return IsValidCategory(fl.Field().String())
	})
	return v
}

// articleFieldNames maps Article fields to their wire names.
var articleFieldNames = map[string]string{
	"ImageURL": "imageUrl",
	"VideoURL": "videoUrl",
	"AudioURL": "audioUrl",
}

// ValidateArticle checks every required field, the length limits and the
// category enumeration. It returns ValidationErrors listing all failures.
func ValidateArticle(a *Article) error {
	if a == nil {
		return ErrInvalidInput
	}
	return ValidateStruct(a)
}

// ValidateStruct runs the shared validator over s and converts failures into
// ValidationErrors. Struct tags `validate` hold the rules; `field` overrides
// the reported field name.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if mapped, ok := articleFieldNames[fe.StructField()]; ok {
			name = mapped
		}
		out = append(out, &ValidationError{Field: name, Message: messageFor(fe, name)})
	}
	return out
}

func messageFor(fe validator.FieldError, name string) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "max":
		return fmt.Sprintf("%s cannot be more than %s characters", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "email":
		return "please add a valid email"
	case "category":
		return fmt.Sprintf("invalid category, must be one of: %s", strings.Join(Categories, ", "))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", name)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
