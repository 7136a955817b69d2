package validators

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const TagNonEmpty = "nonempty"

// New returns a validator with every custom rule of the service registered.
func New() *validator.Validate {
	validate := validator.New()
	if err := validate.RegisterValidation(TagNonEmpty, NonEmpty); err != nil {
		log.Fatalf("failed to register %q validator: %v", TagNonEmpty, err)
	}
	return validate
}

// NonEmpty accepts any string with at least one byte. Absent JSON fields decode
// to "" and are rejected the same way as explicit empty strings.
// Whitespace is content: nothing is trimmed.
func NonEmpty(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		log.Warnf("validator '%s' applied to non-string type: %s", TagNonEmpty, field.Kind().String())
		return false
	}
	return field.Len() > 0
}
