package sysinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunningAsAdmin_Stable(t *testing.T) {
	// The answer depends on the environment, but it must be consistent
	// across calls within one process.
	first := RunningAsAdmin()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, RunningAsAdmin())
	}
}
