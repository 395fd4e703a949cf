package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string // expected message fragment, empty = valid
	}{
		{"valid", "Passw0rd12", ""},
		{"valid long", "SuperSecret99", ""},
		{"too short", "Ab1", "at least 8 characters"},
		{"punctuation rejected", "Passw0rd1!", "only letters and digits"},
		{"space rejected", "Passw0rd 1", "only letters and digits"},
		{"one digit", "Password1x", "at least 2 digits"},
		{"too few letters", "Abc1234567", "at least 6 letters"},
		{"no upper case", "passw0rd12", "upper and lower"},
		{"no lower case", "PASSW0RD12", "upper and lower"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, "AUTH_004", err.Code)
			assert.Contains(t, err.Message, tt.wantErr)
		})
	}
}

func TestSanitizeStruct(t *testing.T) {
	addr := "  12 <Main> St  "
	req := struct {
		Name    string
		Address *string
		Age     int
	}{
		Name:    "  Ada<script>  ",
		Address: &addr,
		Age:     30,
	}

	SanitizeStruct(&req)

	assert.Equal(t, "Ada&lt;script&gt;", req.Name)
	assert.Equal(t, "12 &lt;Main&gt; St", *req.Address)
	assert.Equal(t, 30, req.Age)
}

func TestSanitizeStruct_IgnoresNonStruct(t *testing.T) {
	s := "  x  "
	SanitizeStruct(&s) // no-op, must not panic
	assert.Equal(t, "  x  ", s)
}
