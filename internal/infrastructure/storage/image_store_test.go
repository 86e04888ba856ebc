package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSave_ResizesAndNamesBySlug(t *testing.T) {
	store := NewImageStore(t.TempDir())
	store.MaxDimension = 100

	ref, err := store.Save("Rose Quartz", pngBytes(t, 400, 200))

	require.NoError(t, err)
	assert.Equal(t, "images/rose-quartz.jpg", ref)

	f, err := os.Open(filepath.Join(store.Dir, "rose-quartz.jpg"))
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestSave_SmallImageKeepsSize(t *testing.T) {
	store := NewImageStore(t.TempDir())

	_, err := store.Save("Talc", pngBytes(t, 30, 20))
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(store.Dir, "talc.jpg"))
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Width)
}

func TestSave_BlankSlugUsesRandomName(t *testing.T) {
	store := NewImageStore(t.TempDir())

	ref, err := store.Save("???", pngBytes(t, 10, 10))

	require.NoError(t, err)
	assert.Regexp(t, `^images/[0-9a-f-]{36}\.jpg$`, ref)
}

func TestValidate(t *testing.T) {
	store := NewImageStore(t.TempDir())

	assert.Error(t, store.Validate([]byte("not an image")))

	store.MaxSize = 10
	assert.ErrorContains(t, store.Validate(pngBytes(t, 10, 10)), "exceeds")
}
