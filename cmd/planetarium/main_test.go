package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleScene = "planetarium.yaml"

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(append([]string{"planetarium"}, args...))
	return out.String(), err
}

func TestCheck(t *testing.T) {
	t.Run("sample scene reports every watched pair", func(t *testing.T) {
		out, err := runApp(t, "--config", sampleScene, "check")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		// 6 bodies watched all together, the explicit pairs are among them
		require.Len(t, lines, 15)
		require.Equal(t, "earth / moon: sphere=false aabb=false obb=false intersects=false", lines[0])
		require.True(t, strings.HasPrefix(lines[1], "venus / earth: "), lines[1])
		for _, line := range lines {
			require.Contains(t, line, "intersects=")
		}
	})

	t.Run("invalid scene", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "scene.yaml")
		require.NoError(t, os.WriteFile(path, []byte("bodies:\n  - name: crate\n    parts:\n      - type: box\n"), 0o600))

		out, err := runApp(t, "--config", path, "check")
		require.Error(t, err)
		require.Contains(t, err.Error(), "box size must be positive")
		require.Empty(t, out)
	})

	t.Run("missing config flag", func(t *testing.T) {
		_, err := runApp(t, "check")
		require.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	t.Run("sample scene steps", func(t *testing.T) {
		_, err := runApp(t, "--config", sampleScene, "run", "--frames", "3", "--workers", "4")
		require.NoError(t, err)
	})

	t.Run("debug logging", func(t *testing.T) {
		_, err := runApp(t, "--config", sampleScene, "--debug", "run", "--frames", "1")
		require.NoError(t, err)
	})

	t.Run("missing scene file", func(t *testing.T) {
		_, err := runApp(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "run")
		require.Error(t, err)
	})
}
