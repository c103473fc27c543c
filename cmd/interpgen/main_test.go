package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWritesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pos.go"),
		[]byte("package demo\n\ntype Pos struct {\n\tX, Y float64\n\tName string\n}\n"), 0o644))

	require.NoError(t, run([]string{" Pos "}, dir, ""))

	out, err := os.ReadFile(filepath.Join(dir, "pos_interp.go"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "func (start Pos) Interpolate(end Pos, t float32, curve ease.Curve) Pos {")
	assert.Contains(t, string(out), "Name: interpolate.Nearest(start.Name, end.Name, t, curve),")
}

func TestRunUnknownType(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0o644))

	err := run([]string{"Nope"}, dir, "out.go")
	assert.ErrorContains(t, err, "Nope")
	assert.NoFileExists(t, filepath.Join(dir, "out.go"))
}
