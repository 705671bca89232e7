package funding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacityFor(t *testing.T) {
	tests := []struct {
		name        string
		funderCount int
		hard        int
		pending     int
		soft        int
	}{
		{"zero", 0, 0, 0, 0},
		{"below reserve threshold", 1, 1, 0, 1},
		{"truncates to one", 5, 5, 1, 6},
		{"truncates just below next slot", 9, 9, 1, 10},
		{"ten funders", 10, 10, 2, 12},
		{"odd count truncates", 13, 13, 2, 15},
		{"hundred funders", 100, 100, 20, 120},
		{"negative treated as zero", -3, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CapacityFor(tt.funderCount)
			assert.Equal(t, tt.hard, c.Hard)
			assert.Equal(t, tt.pending, c.Pending)
			assert.Equal(t, tt.soft, c.Soft())
		})
	}
}
