package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayosnow/internal/marketplace"
)

func validRegistration() Registration {
	return Registration{
		Name:            "John Doe",
		Email:           "john@example.com",
		Password:        "hunter2hunter2",
		ConfirmPassword: "hunter2hunter2",
		Role:            string(marketplace.RoleCustomer),
	}
}

func TestCheck_Registration_Valid(t *testing.T) {
	require.NoError(t, Check(validRegistration()))
}

func TestCheck_Registration_PasswordMismatch(t *testing.T) {
	r := validRegistration()
	r.ConfirmPassword = "different-password"

	err := Check(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passwords do not match")
}

func TestCheck_Registration_ShortPassword(t *testing.T) {
	r := validRegistration()
	r.Password = "short"
	r.ConfirmPassword = "short"

	err := Check(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password must be at least 8 characters")
}

func TestCheck_Registration_BadEmail(t *testing.T) {
	r := validRegistration()
	r.Email = "not-an-email"

	err := Check(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email")
}

func TestCheck_Registration_WorkerNeedsSkill(t *testing.T) {
	r := validRegistration()
	r.Role = string(marketplace.RoleWorker)
	r.Skill = ""

	err := Check(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skill is required for workers")

	r.Skill = "Plumber"
	require.NoError(t, Check(r))
}

func TestCheck_Registration_CustomerSkillOptional(t *testing.T) {
	r := validRegistration()
	r.Skill = ""
	require.NoError(t, Check(r))
}

func TestCheck_Booking(t *testing.T) {
	tests := []struct {
		name    string
		form    Booking
		wantErr string
	}{
		{"valid", Booking{Category: "Plumbing", Description: "Leaky kitchen faucet needs replacement"}, ""},
		{"missing category", Booking{Description: "Leaky kitchen faucet"}, "service category is required"},
		{"short description", Booking{Category: "Plumbing", Description: "too short"}, "task description must be at least 10 characters"},
		{"empty description", Booking{Category: "Plumbing"}, "task description is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.form)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCheck_Login(t *testing.T) {
	require.NoError(t, Check(Login{Email: "a@b.com", Password: "x"}))
	require.Error(t, Check(Login{Email: "", Password: "x"}))
	require.Error(t, Check(Login{Email: "a@b.com", Password: ""}))
}

func TestSkillPayload(t *testing.T) {
	worker := NewRegistration(marketplace.RoleWorker)
	worker.Skill = "Electrician"
	require.NotNil(t, worker.SkillPayload())
	assert.Equal(t, "Electrician", *worker.SkillPayload())

	customer := NewRegistration(marketplace.RoleCustomer)
	customer.Skill = "ignored"
	assert.Nil(t, customer.SkillPayload())
}
