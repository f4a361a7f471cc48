package errors

import (
	"errors"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// TranslateValidatorError takes an error from the go-playground validator and converts it into a single user
// friendly error, one sentence per failed field in field order. Other errors are returned unchanged.
func TranslateValidatorError(err error, trans ut.Translator) error {
	switch err := err.(type) {
	case validator.ValidationErrors:
		vals := make([]string, 0, len(err))
		for _, fieldError := range err {
			vals = append(vals, fieldError.Translate(trans))
		}

		return errors.New(strings.Join(vals, " "))
	default:
		return err
	}
}
