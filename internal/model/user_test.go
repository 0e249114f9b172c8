package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRequestValidate(t *testing.T) {
	t.Parallel()

	base := CreateUserRequest{Username: "alice", Email: "alice@example.com", Password: "pw"}

	tests := []struct {
		name    string
		mutate  func(r *CreateUserRequest)
		wantErr bool
	}{
		{name: "minimal", mutate: func(*CreateUserRequest) {}},
		{name: "local phone", mutate: func(r *CreateUserRequest) { r.PhoneNumber = "0501234567" }},
		{name: "international phone", mutate: func(r *CreateUserRequest) { r.PhoneNumber = "+966501234567" }},
		{name: "bad phone", mutate: func(r *CreateUserRequest) { r.PhoneNumber = "12" }, wantErr: true},
		{name: "bad email", mutate: func(r *CreateUserRequest) { r.Email = "alice" }, wantErr: true},
		{name: "missing username", mutate: func(r *CreateUserRequest) { r.Username = "" }, wantErr: true},
		{name: "missing password", mutate: func(r *CreateUserRequest) { r.Password = "" }, wantErr: true},
		{name: "unknown gender", mutate: func(r *CreateUserRequest) { r.Gender = "robot" }, wantErr: true},
		{name: "known gender", mutate: func(r *CreateUserRequest) { r.Gender = GenderFemale }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.mutate(&req)
			err := req.Validate("SA")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(User{ID: 1, Username: "alice", PasswordHash: "$2a$secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "password")
}

func TestPasswordPatchRequestValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, PasswordPatchRequest{Password: "a", PasswordConfirm: "b"}.Validate())
	assert.Error(t, PasswordPatchRequest{Password: "", PasswordConfirm: ""}.Validate())
}
