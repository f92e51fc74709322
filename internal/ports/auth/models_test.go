package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_In(t *testing.T) {
	assert.True(t, RoleManager.In(RoleAdmin, RoleManager))
	assert.False(t, RoleStaff.In(RoleAdmin, RoleManager))
	assert.False(t, RoleAdmin.In())
}
