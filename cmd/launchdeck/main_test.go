package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/launchdeck/internal/cli"
	"github.com/rshade/launchdeck/pkg/version"
)

func TestRun(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Run("success exits 0", func(t *testing.T) {
		var stderr bytes.Buffer
		assert.Equal(t, 0, run([]string{"version"}, &stderr))
		assert.Empty(t, stderr.String())
	})

	t.Run("error exits 1 and prints once", func(t *testing.T) {
		var stderr bytes.Buffer
		code := run([]string{"list", "--output", "xml"}, &stderr)
		assert.Equal(t, 1, code)
		assert.Equal(t, 1, bytes.Count(stderr.Bytes(), []byte("Error:")))
		assert.Contains(t, stderr.String(), "unsupported output format")
	})
}

func TestMainComponents(t *testing.T) {
	root := cli.NewRootCmd(version.GetVersion())
	assert.NotNil(t, root)
	assert.Equal(t, "launchdeck", root.Use)
	assert.NotEmpty(t, version.GetVersion())
}
