package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{"Administrador", RoleAdmin, true},
		{" staff ", RoleStaff, true},
		{"funcionario", RoleStaff, true},
		{"contractor", RoleContractor, true},
		{"CONTRATISTA", RoleContractor, true},
		{"", RoleNone, false},
		{"root", RoleNone, false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseRole(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "staff", RoleStaff.String())
	assert.Equal(t, "contractor", RoleContractor.String())
	assert.Empty(t, RoleNone.String())
	assert.Equal(t, "Role(9)", Role(9).String())
}

func TestRole_JSON(t *testing.T) {
	type holder struct {
		Role Role `json:"role"`
	}

	out, err := json.Marshal(holder{Role: RoleStaff})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"staff"}`, string(out))

	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"role":"contratista"}`), &h))
	assert.Equal(t, RoleContractor, h.Role)

	require.NoError(t, json.Unmarshal([]byte(`{"role":""}`), &h))
	assert.Equal(t, RoleNone, h.Role)

	err = json.Unmarshal([]byte(`{"role":"superuser"}`), &h)
	require.ErrorIs(t, err, ErrUnknownRole)

	_, err = json.Marshal(holder{Role: Role(9)})
	require.Error(t, err)
}

func TestRoleSet(t *testing.T) {
	set := NewRoleSet(RoleStaff, RoleNone, Role(9), RoleAdmin)

	assert.Len(t, set, 2)
	assert.True(t, set.Contains(RoleAdmin))
	assert.True(t, set.Contains(RoleStaff))
	assert.False(t, set.Contains(RoleContractor))
	assert.False(t, set.Contains(RoleNone))
	assert.Equal(t, []Role{RoleAdmin, RoleStaff}, set.Slice())

	var nilSet RoleSet
	assert.False(t, nilSet.Contains(RoleAdmin))
	assert.Empty(t, nilSet.Slice())
}
