package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	sm := NewStateMachine(map[string][]string{
		"pending": {"accepted", "rejected"},
	})

	assert.True(t, sm.CanTransition("pending", "accepted"))
	assert.True(t, sm.CanTransition("pending", "rejected"))
	assert.False(t, sm.CanTransition("accepted", "pending"))
	assert.False(t, sm.CanTransition("accepted", "rejected"))
	assert.False(t, sm.CanTransition("unknown", "accepted"))
}
