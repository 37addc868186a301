package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/model/request"
)

func TestSignUpValidation(t *testing.T) {
	valid := request.SignUpRequest{
		Name:     "Nada",
		Email:    "nada@example.com",
		Password: "red12345!",
	}

	assert.NoError(t, validation.Validator.Struct(valid))
}

func TestSignUpRejectsPasswordContainingPassword(t *testing.T) {
	for _, password := range []string{"password1", "MyPassword", "PASSWORD99"} {
		req := request.SignUpRequest{
			Name:     "Nada",
			Email:    "nada@example.com",
			Password: password,
		}

		err := validation.Validator.Struct(req)
		assert.Error(t, err, password)

		formatted := validation.FormatValidationErrors(err)
		assert.NotEmpty(t, formatted)
		assert.Equal(t, "password", formatted[0].Field)
	}
}

func TestSignUpRejectsWhitespaceOnlyName(t *testing.T) {
	for _, name := range []string{"", " ", "   ", "\t\n"} {
		req := request.SignUpRequest{
			Name:     name,
			Email:    "nada@example.com",
			Password: "red12345!",
		}

		err := validation.Validator.Struct(req)
		assert.Error(t, err, "name=%q", name)

		formatted := validation.FormatValidationErrors(err)
		assert.NotEmpty(t, formatted)
		assert.Equal(t, "name", formatted[0].Field)
	}
}

func TestTaskRejectsWhitespaceOnlyDescription(t *testing.T) {
	req := request.TaskRequest{Description: "   "}

	assert.Error(t, validation.Validator.Struct(req))
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	req := request.SignUpRequest{
		Name:     "Nada",
		Email:    "nada@example.com",
		Password: "abc",
	}

	assert.Error(t, validation.Validator.Struct(req))
}

func TestSignUpRejectsInvalidEmail(t *testing.T) {
	req := request.SignUpRequest{
		Name:     "Nada",
		Email:    "not-an-email",
		Password: "red12345!",
	}

	assert.Error(t, validation.Validator.Struct(req))
}

func TestUpdateUserAllowsPartialPayload(t *testing.T) {
	name := "Renamed"

	assert.NoError(t, validation.Validator.Struct(request.UpdateUserRequest{Name: &name}))
	assert.NoError(t, validation.Validator.Struct(request.UpdateUserRequest{}))
}
