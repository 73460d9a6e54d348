package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "padron/pkg/domain-errors"
)

func validRequest() RegisterUserRequest {
	return RegisterUserRequest{
		Name:           "Test User",
		Phone:          "+573001234567",
		Address:        "Test Address",
		MunicipalityID: 1,
	}
}

func TestValidateAcceptsValidRequest(t *testing.T) {
	assert.NoError(t, validRequest().Validate())
}

func TestValidateRulesInOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterUserRequest)
		message string
	}{
		{"empty name", func(r *RegisterUserRequest) { r.Name = "" }, "Name is required."},
		{"whitespace name", func(r *RegisterUserRequest) { r.Name = "   " }, "Name is required."},
		{"empty address", func(r *RegisterUserRequest) { r.Address = "" }, "Address is required."},
		{"whitespace address", func(r *RegisterUserRequest) { r.Address = "\t " }, "Address is required."},
		{"zero municipality", func(r *RegisterUserRequest) { r.MunicipalityID = 0 }, "Valid Municipality is required."},
		{"negative municipality", func(r *RegisterUserRequest) { r.MunicipalityID = -3 }, "Valid Municipality is required."},
		{"phone too short", func(r *RegisterUserRequest) { r.Phone = "123" }, "Invalid phone number format."},
		{"phone too long", func(r *RegisterUserRequest) { r.Phone = "1234567890123456" }, "Invalid phone number format."},
		{"phone with letters", func(r *RegisterUserRequest) { r.Phone = "+57abc123456" }, "Invalid phone number format."},
		{"phone with spaces", func(r *RegisterUserRequest) { r.Phone = "+57 3001234567" }, "Invalid phone number format."},
		{"empty phone", func(r *RegisterUserRequest) { r.Phone = "" }, "Invalid phone number format."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			err := req.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

// Name wins over address, address over municipality, municipality over phone.
func TestValidateFirstFailureWins(t *testing.T) {
	req := RegisterUserRequest{Name: "", Address: "", MunicipalityID: 0, Phone: "bad"}
	assert.EqualError(t, req.Validate(), "Name is required.")

	req.Name = "Test User"
	assert.EqualError(t, req.Validate(), "Address is required.")

	req.Address = "Test Address"
	assert.EqualError(t, req.Validate(), "Valid Municipality is required.")

	req.MunicipalityID = 1
	assert.EqualError(t, req.Validate(), "Invalid phone number format.")
}

func TestPhoneBoundaries(t *testing.T) {
	req := validRequest()

	req.Phone = "1234567" // 7 digits, minimum
	assert.NoError(t, req.Validate())

	req.Phone = "123456789012345" // 15 digits, maximum
	assert.NoError(t, req.Validate())

	req.Phone = "+123456789012345" // plus does not count toward the digits
	assert.NoError(t, req.Validate())
}

func TestToUserLeavesIDUnset(t *testing.T) {
	user := validRequest().ToUser()
	assert.Zero(t, user.ID)
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "+573001234567", user.Phone)
	assert.Equal(t, "Test Address", user.Address)
	assert.Equal(t, 1, user.MunicipalityID)
}
