package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanSubmitFor(t *testing.T) {
	supervisors := []string{"sup-1", "sup-2"}

	assert.True(t, CanSubmitFor(Identity{UserID: "admin-1", Role: RoleAdmin}, nil))
	assert.True(t, CanSubmitFor(Identity{UserID: "sup-2", Role: RoleSupervisor}, supervisors))
	assert.False(t, CanSubmitFor(Identity{UserID: "sup-9", Role: RoleSupervisor}, supervisors))
	// a linked user without the supervisor role is still rejected
	assert.False(t, CanSubmitFor(Identity{UserID: "sup-1", Role: RoleViewer}, supervisors))
	assert.False(t, CanSubmitFor(Identity{Role: RoleSupervisor}, []string{""}))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleViewer))
	assert.False(t, ValidRole("member"))
}
