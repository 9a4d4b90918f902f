package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "inventory:qr:AST-2025-0001", qrKey("AST-2025-0001"))
	assert.Equal(t, "inventory:lock:cleanup", lockKey("cleanup"))
}
