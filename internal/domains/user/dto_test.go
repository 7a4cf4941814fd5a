package user

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegister() RegisterRequest {
	return RegisterRequest{
		Username:  "paul",
		Email:     "paul@arrakis.example",
		FirstName: "Paul",
		LastName:  "Atreides",
		Password:  "longenoughpassword",
		Password2: "longenoughpassword",
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	assert.NoError(t, validRegister().Validate())

	t.Run("username required", func(t *testing.T) {
		req := validRegister()
		req.Username = ""
		assert.Error(t, req.Validate())
	})

	t.Run("email format", func(t *testing.T) {
		req := validRegister()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("short password", func(t *testing.T) {
		req := validRegister()
		req.Password = "short"
		req.Password2 = "short"
		assert.Error(t, req.Validate())
	})

	t.Run("mismatch is keyed to password", func(t *testing.T) {
		req := validRegister()
		req.Password2 = "somethingelseentirely"

		err := req.Validate()
		require.Error(t, err)

		errs, ok := err.(validation.Errors)
		require.True(t, ok, "expected field-keyed validation errors, got %T", err)
		assert.Contains(t, errs, "password")
	})
}

func TestLoginRequestValidate(t *testing.T) {
	assert.NoError(t, LoginRequest{Email: "paul@arrakis.example", Password: "x"}.Validate())
	assert.Error(t, LoginRequest{Email: "", Password: "x"}.Validate())
	assert.Error(t, LoginRequest{Email: "paul@arrakis.example"}.Validate())
}

func TestUpdateProfileRequestValidate(t *testing.T) {
	assert.NoError(t, UpdateProfileRequest{}.Validate())

	empty := ""
	assert.Error(t, UpdateProfileRequest{Username: &empty}.Validate())
}

func TestUserToResponseHidesCredentials(t *testing.T) {
	u := User{Username: "paul", Email: "paul@arrakis.example", PasswordHash: "secret"}
	resp := u.ToResponse(nil)

	assert.Equal(t, "paul", resp.Username)
	assert.NotNil(t, resp.Favorites)
	assert.Empty(t, resp.Favorites)
}
