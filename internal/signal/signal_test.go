package signal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alert_active")
	port := NewFilePort(path)

	t.Run("read before write", func(t *testing.T) {
		_, present, err := port.Read()
		require.NoError(t, err)
		assert.False(t, present)
	})

	t.Run("write then read", func(t *testing.T) {
		status := Status{Active: true, Tier: 1, Events: []string{"Tornado Warning"}}
		require.NoError(t, port.Write(status))

		got, present, err := port.Read()
		require.NoError(t, err)
		assert.True(t, present)
		assert.Equal(t, status, got)
	})

	t.Run("write replaces previous", func(t *testing.T) {
		require.NoError(t, port.Write(Status{Active: true, Tier: 2, Events: []string{"Tornado Watch"}}))

		got, present, err := port.Read()
		require.NoError(t, err)
		assert.True(t, present)
		assert.Equal(t, 2, got.Tier)
	})

	t.Run("world readable", func(t *testing.T) {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
	})

	t.Run("clear removes file", func(t *testing.T) {
		require.NoError(t, port.Clear())
		_, present, err := port.Read()
		require.NoError(t, err)
		assert.False(t, present)
	})

	t.Run("clear when absent is not an error", func(t *testing.T) {
		require.NoError(t, port.Clear())
	})
}

func TestFilePort_CorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alert_active")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, _, err := NewFilePort(path).Read()
	assert.Error(t, err)
}

func TestMemoryPort(t *testing.T) {
	port := NewMemoryPort()

	_, present, err := port.Read()
	require.NoError(t, err)
	assert.False(t, present)

	require.NoError(t, port.Write(Status{Active: true, Tier: 1}))
	got, present, err := port.Read()
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, 1, got.Tier)

	require.NoError(t, port.Clear())
	_, present, err = port.Read()
	require.NoError(t, err)
	assert.False(t, present)
}
