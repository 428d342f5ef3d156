package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		token string
		want  Role
		err   error
	}{
		{token: "moderator", want: RoleModerator},
		{token: "MODERATOR", want: RoleModerator},
		{token: " Administrator ", want: RoleAdministrator},
		{token: "user", want: RoleUser},
		{token: "SUPERUSER", err: ErrInvalidRole},
		{token: "", err: ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseRole(tt.token)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleSet_AddRemoveReportChange(t *testing.T) {
	s := NewRoleSet()

	assert.True(t, s.Add(RoleModerator))
	assert.False(t, s.Add(RoleModerator), "second add is a no-op")
	assert.True(t, s.Has(RoleModerator))

	assert.True(t, s.Remove(RoleModerator))
	assert.False(t, s.Remove(RoleModerator), "second remove is a no-op")
	assert.Empty(t, s)
}

func TestRoleSet_StringsSorted(t *testing.T) {
	s := NewRoleSet(RoleUser, RoleAdministrator, RoleModerator)
	assert.Equal(t, []string{"ADMINISTRATOR", "MODERATOR", "USER"}, s.Strings())
}

func TestRoleSet_CloneIsIndependent(t *testing.T) {
	s := NewRoleSet(RoleUser)
	c := s.Clone()
	c.Add(RoleAdministrator)

	assert.False(t, s.Has(RoleAdministrator))
	assert.True(t, c.Has(RoleAdministrator))
}

func TestAccount_RolesOnNilSet(t *testing.T) {
	var a Account
	assert.False(t, a.HasRole(RoleUser))
	assert.False(t, a.RemoveRole(RoleUser))
	assert.True(t, a.AddRole(RoleUser))
	assert.True(t, a.HasRole(RoleUser))
}
