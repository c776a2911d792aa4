package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type loginInput struct {
	Email    string  `json:"email"    validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=6"`
	State    string  `json:"state"    validate:"required,in=cached|update-available"`
	Version  *string `json:"version"  validate:"nullable,max=5"`
	Retries  int     `json:"retries"  validate:"max=3"`
}

func TestStructValid(t *testing.T) {
	v := "v1"
	errs := Struct(&loginInput{Email: "a@b.co", Password: "secret", State: "cached", Version: &v})
	assert.False(t, HasErrors(errs))
}

func TestStructErrors(t *testing.T) {
	long := "v123456"
	errs := Struct(loginInput{Email: "nope", Password: "123", State: "gone", Version: &long, Retries: 9})

	assert.Equal(t, map[string]string{
		"email":    "The email must be a valid email address.",
		"password": "The password must be at least 6 characters.",
		"state":    "The selected state is invalid.",
		"version":  "The version must not exceed 5 characters.",
		"retries":  "The retries must not be greater than 3.",
	}, errs)
}

func TestRequiredAndNullable(t *testing.T) {
	errs := Struct(&loginInput{})
	assert.Equal(t, "The email field is required.", errs["email"])
	assert.Equal(t, "The password field is required.", errs["password"])
	assert.NotContains(t, errs, "version")
	assert.NotContains(t, errs, "retries")
}

func TestNonStruct(t *testing.T) {
	assert.Empty(t, Struct("x"))
}
