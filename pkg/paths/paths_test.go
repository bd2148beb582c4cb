package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("explicit vault root", func(t *testing.T) {
		dir := t.TempDir()
		p, err := New(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, p.VaultRoot())
		assert.False(t, p.UsedFallback())
		assert.Equal(t, filepath.Join(dir, ".varsub.toml"), p.VaultConfigPath())
		assert.Equal(t, filepath.Join(dir, ".env"), p.EnvFilePath())
	})

	t.Run("from VARSUB_VAULT env", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvVault, dir)
		p, err := New("")
		require.NoError(t, err)
		assert.Equal(t, dir, p.VaultRoot())
	})

	t.Run("custom XDG directories", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/custom/config")
		t.Setenv(EnvStateDir, "/custom/state")
		p, err := New(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "/custom/config", p.ConfigDir())
		assert.Equal(t, "/custom/config/config.toml", p.UserConfigPath())
		assert.Equal(t, "/custom/state/varsub.log", p.LogFilePath())
		assert.Equal(t, "/custom/state/varsub.log", DefaultLogFilePath())
	})

	t.Run("relative root is made absolute", func(t *testing.T) {
		p, err := New(".")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(p.VaultRoot()))
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/vault", filepath.Join(home, "vault")},
		{"/abs/path", "/abs/path"},
		{"~other/vault", "~other/vault"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}
