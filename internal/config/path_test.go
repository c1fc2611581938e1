package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OsamaNuserat/expense-tracker-sub000/internal/common"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("TRACKER_TEST_DIR", "/srv/data")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty path", input: "", expected: ""},
		{name: "absolute path unchanged", input: "/var/lib/tracker.db", expected: "/var/lib/tracker.db"},
		{name: "tilde prefix", input: "~/tracker.db", expected: filepath.Join(home, "tracker.db")},
		{name: "bare tilde", input: "~", expected: home},
		{name: "env var", input: "$TRACKER_TEST_DIR/tracker.db", expected: "/srv/data/tracker.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "tracker.db", filepath.Base(path))
}

func TestDefaultDBPathWithoutHome(t *testing.T) {
	t.Setenv("HOME", "")

	_, err := DefaultDBPath()
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestLocation(t *testing.T) {
	t.Run("valid timezone", func(t *testing.T) {
		loc, err := Location("Asia/Amman")
		require.NoError(t, err)
		assert.Equal(t, "Asia/Amman", loc.String())
	})

	t.Run("unknown timezone", func(t *testing.T) {
		_, err := Location("Mars/Olympus")
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})
}
