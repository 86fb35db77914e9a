package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	govalidator "github.com/go-playground/validator/v10"
)

func newTestValidator(t *testing.T) *govalidator.Validate {
	t.Helper()
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	require.NoError(t, v.RegisterValidation("notreserved", ValidateNotReserved))
	require.NoError(t, v.RegisterValidation("notblank", ValidateNotBlank))
	require.NoError(t, v.RegisterValidation("maxwords", ValidateMaxWords))
	return v
}

type accountForm struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,notblank,notreserved" errorMsg:"Username must not be blank or a reserved name"`
	Password string `json:"password" validate:"required,min=8"`
	Bio      string `json:"bio" validate:"omitempty,maxwords=3"`
}

func TestValidateStruct(t *testing.T) {
	v := newTestValidator(t)

	t.Run("valid input yields no errors", func(t *testing.T) {
		errs := ValidateStruct(v, accountForm{
			Email:    "a@example.com",
			Username: "alice",
			Password: "password123",
		})
		assert.Nil(t, errs)
	})

	t.Run("errors are keyed by json field name", func(t *testing.T) {
		errs := ValidateStruct(v, accountForm{
			Email:    "not-an-email",
			Username: "   ",
			Password: "short",
		})
		require.NotNil(t, errs)
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "username")
		assert.Contains(t, errs, "password")
	})

	t.Run("errorMsg tag wins over default message", func(t *testing.T) {
		errs := ValidateStruct(v, accountForm{
			Email:    "a@example.com",
			Username: "Admin",
			Password: "password123",
		})
		require.NotNil(t, errs)
		assert.Equal(t, "Username must not be blank or a reserved name", errs["username"])
	})

	t.Run("maxwords", func(t *testing.T) {
		errs := ValidateStruct(v, accountForm{
			Email:    "a@example.com",
			Username: "alice",
			Password: "password123",
			Bio:      "one two three four",
		})
		require.NotNil(t, errs)
		assert.Contains(t, errs, "bio")
	})
}

func TestValidateNotReserved(t *testing.T) {
	v := newTestValidator(t)
	type form struct {
		Name string `validate:"notreserved"`
	}
	for _, reserved := range []string{"admin", "ADMIN", "Moderator", "user", " admin "} {
		assert.Error(t, v.Struct(form{Name: reserved}), "name %q", reserved)
	}
	assert.NoError(t, v.Struct(form{Name: "alice"}))
	assert.NoError(t, v.Struct(form{Name: "administrator"}))
}
