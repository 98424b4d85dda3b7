package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "taskboard/internal/errors"
)

type registerBody struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type taskBody struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	var httpErr *apperrors.HTTPError
	assert.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.StatusCode)
	assert.Equal(t, "Validation failed", httpErr.Body.Error)

	msgs := make(map[string]string, len(httpErr.Body.Details))
	for _, d := range httpErr.Body.Details {
		msgs[d.Field] = d.Message
	}
	return msgs
}

func TestValidator_PassesValidInput(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&registerBody{
		Username: "ana_b",
		Email:    "ana@example.com",
		Password: "secret1",
	}))
	assert.NoError(t, v.Validate(&taskBody{
		Title:    "Write tests",
		Status:   "in-progress",
		Priority: "high",
	}))
}

func TestValidator_BatchesAllViolations(t *testing.T) {
	v := New()

	err := v.Validate(&registerBody{})
	msgs := fieldMessages(t, err)

	// Every violated field is reported in one response.
	assert.Len(t, msgs, 3)
	assert.Equal(t, "Username is required", msgs["username"])
	assert.Equal(t, "Email is required", msgs["email"])
	assert.Equal(t, "Password is required", msgs["password"])
}

func TestValidator_Messages(t *testing.T) {
	v := New()

	tests := []struct {
		name        string
		body        interface{}
		wantField   string
		wantMessage string
	}{
		{
			name:        "username too short",
			body:        &registerBody{Username: "ab", Email: "a@b.co", Password: "secret1"},
			wantField:   "username",
			wantMessage: "Username must be between 3 and 30 characters",
		},
		{
			name:        "username too long",
			body:        &registerBody{Username: strings.Repeat("a", 31), Email: "a@b.co", Password: "secret1"},
			wantField:   "username",
			wantMessage: "Username must be between 3 and 30 characters",
		},
		{
			name:        "username bad charset",
			body:        &registerBody{Username: "ana bell", Email: "a@b.co", Password: "secret1"},
			wantField:   "username",
			wantMessage: "Username can only contain letters, numbers, and underscores",
		},
		{
			name:        "invalid email",
			body:        &registerBody{Username: "ana", Email: "nope", Password: "secret1"},
			wantField:   "email",
			wantMessage: "Please provide a valid email",
		},
		{
			name:        "password too short",
			body:        &registerBody{Username: "ana", Email: "a@b.co", Password: "abc"},
			wantField:   "password",
			wantMessage: "Password must be at least 6 characters long",
		},
		{
			name:        "title too long",
			body:        &taskBody{Title: strings.Repeat("x", 101)},
			wantField:   "title",
			wantMessage: "Title cannot exceed 100 characters",
		},
		{
			name:        "status outside the closed set",
			body:        &taskBody{Title: "ok", Status: "archived"},
			wantField:   "status",
			wantMessage: "Status must be pending, in-progress, or completed",
		},
		{
			name:        "priority outside the closed set",
			body:        &taskBody{Title: "ok", Priority: "urgent"},
			wantField:   "priority",
			wantMessage: "Priority must be low, medium, or high",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.body)
			msgs := fieldMessages(t, err)
			assert.Equal(t, tt.wantMessage, msgs[tt.wantField])
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Title", label("title"))
	assert.Equal(t, "Current password", label("currentPassword"))
	assert.Equal(t, "New password", label("newPassword"))
}
