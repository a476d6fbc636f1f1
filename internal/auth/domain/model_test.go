package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActor(t *testing.T) {
	anon := Anonymous()
	assert.False(t, anon.Authenticated())
	assert.False(t, anon.IsAdmin())

	// a role without an identity never authorizes anything
	assert.False(t, Actor{Role: RoleAdmin}.IsAdmin())

	admin := Actor{IdentityID: "u1", Role: RoleAdmin}
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsDeveloper())

	dev := Actor{IdentityID: "u2", Role: RoleDeveloper}
	assert.True(t, dev.IsDeveloper())

	noRole := Actor{IdentityID: "u3"}
	assert.True(t, noRole.Authenticated())
	assert.False(t, noRole.IsDeveloper())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleDeveloper.Valid())
	assert.False(t, RoleNone.Valid())
	assert.False(t, Role("owner").Valid())
}
