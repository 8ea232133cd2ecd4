package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Satisfies(t *testing.T) {
	tests := []struct {
		name     string
		actual   Role
		required Role
		want     bool
	}{
		{"registered meets registered", RoleRegistered, RoleRegistered, true},
		{"admin meets admin", RoleAdmin, RoleAdmin, true},
		{"admin meets registered", RoleAdmin, RoleRegistered, true},
		{"registered does not meet admin", RoleRegistered, RoleAdmin, false},
		{"anonymous does not meet registered", RoleAnonymous, RoleRegistered, false},
		{"anonymous does not meet admin", RoleAnonymous, RoleAdmin, false},
		{"anyone meets anonymous", RoleAnonymous, RoleAnonymous, true},
		{"registered meets anonymous", RoleRegistered, RoleAnonymous, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.actual.Satisfies(tt.required))
		})
	}
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleRegistered, ParseRole("registered"))
	assert.Equal(t, RoleAnonymous, ParseRole("anonymous"))
	// unknown role strings fail closed
	assert.Equal(t, RoleAnonymous, ParseRole("superuser"))
	assert.Equal(t, RoleAnonymous, ParseRole(""))
}
