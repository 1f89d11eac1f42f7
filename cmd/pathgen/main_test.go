package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"path-system/extract"
	"path-system/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{B: 255, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestPathgen(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "map.png")
	output := filepath.Join(dir, "out", "path.graph.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0o755))
	writePNG(t, input, 8, 8)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--input", input, "--output", output, "--step", "4", "--radius", "4"})
	require.NoError(t, cmd.Execute())

	// 对角线距离 5.66 > 4, 只连水平与垂直方向
	assert.Equal(t, extract.Summary{Nodes: 4, Edges: 4, Width: 8, Height: 8}.String()+"\n", out.String())

	data, err := store.ReadGraph(output)
	require.NoError(t, err)
	assert.Len(t, data.Nodes, 4)
	assert.Len(t, data.Edges, 4)
	assert.NotNil(t, data.POIs)
}

func TestPathgen_DecodeFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.png")
	output := filepath.Join(dir, "path.graph.json")
	require.NoError(t, os.WriteFile(input, []byte("definitely not a png"), 0o600))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--input", input, "--output", output})
	err := cmd.Execute()
	require.ErrorIs(t, err, extract.ErrDecode)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPathgen_InvalidParams(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "map.png")
	writePNG(t, input, 4, 4)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--input", input, "--output", filepath.Join(dir, "g.json"), "--hmin", "170", "--hmax", "10"})
	assert.ErrorIs(t, cmd.Execute(), extract.ErrBadHueRange)
}
