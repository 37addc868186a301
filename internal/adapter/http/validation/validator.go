package validation

import (
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"taskapp/internal/core/model/response"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	if err := Validator.RegisterValidation("notpassword", notPassword); err != nil {
		panic(err)
	}

	if err := Validator.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

// notPassword rejects passwords containing the word "password" in any casing.
func notPassword(fl validator.FieldLevel) bool {
	return !strings.Contains(strings.ToLower(fl.Field().String()), "password")
}

// notBlank rejects values that are empty once surrounding whitespace is
// stripped. Stored values are trimmed, so a whitespace-only input would
// otherwise collapse to an empty string after validation.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func addCustomTranslations() {
	Validator.RegisterTranslation("notpassword", Translator, func(ut ut.Translator) error {
		return ut.Add("notpassword", `{0} must not contain the word "password"`, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("notpassword", fe.Field())
		return t
	})

	Validator.RegisterTranslation("notblank", Translator, func(ut ut.Translator) error {
		return ut.Add("notblank", "{0} must not be blank", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("notblank", fe.Field())
		return t
	})
}

func FormatValidationErrors(err error) []response.ValidationError {
	var errors []response.ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errors = append(errors, response.ValidationError{
				Field:   strings.ToLower(fieldError.Field()),
				Message: fieldError.Translate(Translator),
			})
		}
	}

	return errors
}
