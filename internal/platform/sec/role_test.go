// Copyright (c) 2026 Libris. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nlamduy/libris/internal/platform/sec"
)

/*
TestParseRole accepts exactly the closed role set.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    sec.Role
		isValid bool
	}{
		{"admin", sec.RoleAdmin, true},
		{"issuer", sec.RoleIssuer, true},
		{"member", sec.RoleMember, true},
		{"Admin", "", false},
		{"superuser", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			role, err := sec.ParseRole(tt.input)
			if tt.isValid {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, role)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

/*
TestRole_In verifies set membership used by the route gates.
*/
func TestRole_In(t *testing.T) {
	staff := []sec.Role{sec.RoleIssuer, sec.RoleAdmin}

	assert.True(t, sec.RoleAdmin.In(staff...))
	assert.True(t, sec.RoleIssuer.In(staff...))
	assert.False(t, sec.RoleMember.In(staff...))
	assert.False(t, sec.RoleMember.In())
}
