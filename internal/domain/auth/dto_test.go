package auth

import (
	"strings"
	"testing"

	"github.com/alefshop/attendance-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{Name: "Reza", Phone: "09123456789", Password: "password1", ConfirmPassword: "password1"}

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
		field  string
	}{
		{"ok", func(r *RegisterRequest) {}, ""},
		{"missing name", func(r *RegisterRequest) { r.Name = " " }, "name"},
		{"long name", func(r *RegisterRequest) { r.Name = strings.Repeat("a", 256) }, "name"},
		{"bad phone", func(r *RegisterRequest) { r.Phone = "9123456789" }, "phone"},
		{"short password", func(r *RegisterRequest) { r.Password, r.ConfirmPassword = "short", "short" }, "password"},
		{"mismatch", func(r *RegisterRequest) { r.ConfirmPassword = "password2" }, "confirm_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	req := LoginRequest{Phone: "09123456789", Password: "x"}
	assert.NoError(t, req.Validate())

	req = LoginRequest{}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	assert.Len(t, verrs.ToMap(), 2)
}
