package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// ImageProcessor validates and normalizes uploaded cover images.
type ImageProcessor struct {
	MaxSize int64 // bytes
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: 5 * 1024 * 1024} // 5MB
}

// ValidateImage checks size and that the payload is JPEG or PNG.
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
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

// ProcessCover re-encodes the cover as JPEG quality 90, bounded to
// 1200px on the long edge, plus a 300px thumbnail variant.
func (p *ImageProcessor) ProcessCover(data []byte) (cover, thumbnail []byte, err error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("cannot decode image: %w", err)
	}

	encode := func(m image.Image) ([]byte, error) {
		b := new(bytes.Buffer)
		if err := jpeg.Encode(b, m, &jpeg.Options{Quality: 90}); err != nil {
			return nil, err
		}
		return b.Bytes(), nil
	}

	cover, err = encode(imaging.Fit(img, 1200, 1200, imaging.Lanczos))
	if err != nil {
		return nil, nil, fmt.Errorf("cannot encode cover: %w", err)
	}
	thumbnail, err = encode(imaging.Fit(img, 300, 300, imaging.Lanczos))
	if err != nil {
		return nil, nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}

	return cover, thumbnail, nil
}
