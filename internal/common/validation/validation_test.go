package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlertMessage(t *testing.T) {
	assert.NoError(t, AlertMessage("Hot slot right now"))
	assert.Error(t, AlertMessage(""))
	assert.Error(t, AlertMessage("   "))
	assert.Error(t, AlertMessage(strings.Repeat("x", MaxMessageLength+1)))
}

func TestAlertDuration(t *testing.T) {
	assert.NoError(t, AlertDuration(45))
	assert.Error(t, AlertDuration(0))
	assert.Error(t, AlertDuration(-10))
	assert.Error(t, AlertDuration(MaxAlertDuration+1))
}

func TestTargetList(t *testing.T) {
	assert.NoError(t, TargetList(nil))
	assert.NoError(t, TargetList([]string{"DE", "NOCODE"}))
	assert.Error(t, TargetList([]string{"DE", " "}))
	assert.Error(t, TargetList(make([]string, MaxTargetValues+1)))
}
