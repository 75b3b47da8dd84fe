package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow_Burst(t *testing.T) {
	krl := New(1, 2)
	defer krl.Stop()

	// Burst of 2 tokens available immediately.
	assert.True(t, krl.Allow("10.0.0.1"))
	assert.True(t, krl.Allow("10.0.0.1"))
	assert.False(t, krl.Allow("10.0.0.1"))
}

func TestAllow_IndependentKeys(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("10.0.0.1"))
	assert.False(t, krl.Allow("10.0.0.1"))

	// A different client is unaffected.
	assert.True(t, krl.Allow("10.0.0.2"))
}

func TestStop_Idempotent(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	krl.Stop()
}
