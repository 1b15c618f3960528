package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fuel-tracker/backend/internal/validate"
)

func TestRegistration_Valid(t *testing.T) {
	c, err := validate.Registration("  road_trip-99 ", "correct horse")

	require.NoError(t, err)
	assert.Equal(t, "road_trip-99", c.Username)
	assert.Equal(t, "correct horse", c.Password)
}

func TestRegistration_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		field    string
		msg      string
	}{
		{"empty username", "", "password1", "username", "Username must be 3-50 characters"},
		{"short username", "ab", "password1", "username", "Username must be 3-50 characters"},
		{"long username", strings.Repeat("a", 51), "password1", "username", "Username must be 3-50 characters"},
		{"bad characters", "bad name!", "password1", "username", "Username can only contain letters, numbers, underscores, and hyphens"},
		{"short password", "driver", "short", "password", "Password must be at least 8 characters long"},
		{"empty password", "driver", "", "password", "Password must be at least 8 characters long"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := validate.Registration(tc.username, tc.password)

			requireFieldError(t, err, tc.field, tc.msg)
		})
	}
}

func TestLogin(t *testing.T) {
	c, err := validate.Login(" driver ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "driver", c.Username)

	_, err = validate.Login("   ", "pw")
	requireFieldError(t, err, "username", "Username is required")

	_, err = validate.Login("driver", "")
	requireFieldError(t, err, "password", "Password is required")
}
