package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("5000")
	require.NoError(t, err)
	assert.Equal(t, ":5000", addr)

	addr, err = ListenAddr(" :8080 ")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	_, err = ListenAddr("  ")
	assert.Error(t, err)
}
