package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, r)

	r, err = ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("ROLE_ADMIN")
	assert.Error(t, err)
}

func TestWithoutPassword(t *testing.T) {
	u := &User{Login: "alice", PasswordHash: "hash", Apps: []string{"weather"}}
	c := u.WithoutPassword()

	assert.Empty(t, c.PasswordHash)
	assert.Equal(t, "hash", u.PasswordHash, "original must be untouched")
	c.Apps[0] = "cook"
	assert.Equal(t, "weather", u.Apps[0])
}

func TestValidAppName(t *testing.T) {
	assert.True(t, ValidAppName("weather"))
	assert.False(t, ValidAppName(""))
	assert.False(t, ValidAppName("   "))
	assert.False(t, ValidAppName("weather,cook"))
}

func TestNormalizeGrants(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeGrants([]string{"a", "b", "a"}))
	assert.Equal(t, []string{}, NormalizeGrants(nil))
}
