/*
Copyright © 2026 the hostsnap authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOutRoot(t *testing.T) {
	localName, err := os.Hostname()
	require.NoError(t, err)

	tests := []struct {
		name     string
		outdir   string
		hostname string
		want     string
	}{
		{"explicit outdir wins", "fixtures/lab42", "lab42", "fixtures/lab42"},
		{"remote hostname", "", "lab42", "lab42"},
		{"local resolves hostname", "", "local", localName},
		{"empty hostname resolves hostname", "", "", localName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveOutRoot(tt.outdir, tt.hostname)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckOutRoot(t *testing.T) {
	t.Run("missing directory is fine", func(t *testing.T) {
		assert.NoError(t, checkOutRoot(filepath.Join(t.TempDir(), "absent")))
	})

	t.Run("empty directory is fine", func(t *testing.T) {
		assert.NoError(t, checkOutRoot(t.TempDir()))
	})

	t.Run("non-empty directory refused", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "old.yaml"), []byte("x"), 0o644))
		assert.Error(t, checkOutRoot(dir))
	})
}

func TestResolvePlan(t *testing.T) {
	t.Run("default plan when no file", func(t *testing.T) {
		p, err := resolvePlan("")
		require.NoError(t, err)
		assert.NotEmpty(t, p)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := resolvePlan(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("valid file loads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plan.yaml")
		content := `cpu:
  commands:
    - command: lscpu
      dirname: lscpu
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		p, err := resolvePlan(path)
		require.NoError(t, err)
		require.Len(t, p, 1)
		assert.Equal(t, "cpu", p[0].Name)
	})
}
