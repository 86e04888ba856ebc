package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mineral-catalog/internal/shared/utils"
)

// ImageStore keeps mineral pictures on local disk under Dir, which the
// HTTP server exposes at /images.
type ImageStore struct {
	Dir          string
	MaxSize      int64 // bytes
	MaxDimension int   // longest side after resize, pixels
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{
		Dir:          dir,
		MaxSize:      5 * 1024 * 1024,
		MaxDimension: 800,
	}
}

// Validate accepts JPEG and PNG up to MaxSize.
func (s *ImageStore) Validate(data []byte) error {
	if int64(len(data)) > s.MaxSize {
		return fmt.Errorf("image exceeds %dMB", s.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// Save validates data, shrinks it to MaxDimension and writes it as JPEG
// named after the mineral. It returns the reference stored on the record,
// e.g. "images/quartz.jpg". An existing file with the same name is replaced.
func (s *ImageStore) Save(name string, data []byte) (string, error) {
	if err := s.Validate(data); err != nil {
		return "", err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("cannot decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > s.MaxDimension || b.Dy() > s.MaxDimension {
		img = imaging.Fit(img, s.MaxDimension, s.MaxDimension, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return "", fmt.Errorf("cannot encode image: %w", err)
	}

	slug := utils.GenerateSlug(name)
	if slug == "" {
		slug = uuid.NewString()
	}
	filename := slug + ".jpg"

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, filename), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	log.Info().Str("file", filename).Int("bytes", buf.Len()).Msg("[IMAGES] Saved")
	return path.Join("images", filename), nil
}
