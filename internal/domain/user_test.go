package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole("Admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	role, err = ParseRole("User")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, role)

	for _, bad := range []string{"", "admin", "root", "USER"} {
		_, err := ParseRole(bad)
		assert.Error(t, err, bad)
	}
}

func TestRoleZeroValueInvalid(t *testing.T) {
	var r Role
	assert.False(t, r.Valid())
	_, err := r.MarshalText()
	assert.Error(t, err)
}

func TestPublicUserOmitsHash(t *testing.T) {
	u := &User{ID: "u-1", Email: "alice@example.com", PasswordHash: "$argon2id$secret", Role: RoleUser}

	raw, err := json.Marshal(u.Public())
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"u-1","email":"alice@example.com","role":"User"}`, string(raw))
	assert.NotContains(t, string(raw), "argon2id")
}

func TestRoleJSONRejectsUnknown(t *testing.T) {
	var out PublicUser
	err := json.Unmarshal([]byte(`{"id":"u","email":"e","role":"Superuser"}`), &out)
	assert.Error(t, err)
}
