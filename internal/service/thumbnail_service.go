package service

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path"
	"strings"

	// Register decoders for the formats vehicle photos arrive in.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"go-dealership/internal/util"
)

// ThumbnailService renders the listing-grid thumbnail for a vehicle photo:
// a scaled JPEG written next to the source image with a "-tn" suffix.
type ThumbnailService struct {
	resolver *util.ImagePathResolver
	maxSize  int
}

func NewThumbnailService(resolver *util.ImagePathResolver, maxSize int) *ThumbnailService {
	if maxSize <= 0 {
		maxSize = 320
	}
	return &ThumbnailService{resolver: resolver, maxSize: maxSize}
}

// Generate decodes the photo at the given web path, scales its longest side
// down to the configured maximum and writes the JPEG thumbnail. It returns
// the thumbnail's web path for storage on the inventory row.
func (s *ThumbnailService) Generate(webImagePath string) (string, error) {
	resolved, err := s.resolver.Resolve(webImagePath)
	if err != nil {
		return "", err
	}

	file, err := os.Open(resolved)
	if err != nil {
		return "", fmt.Errorf("open vehicle image: %w", err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode vehicle image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid image dimensions for %s", webImagePath)
	}

	maxDim := width
	if height > maxDim {
		maxDim = height
	}
	scale := 1.0
	if maxDim > s.maxSize {
		scale = float64(s.maxSize) / float64(maxDim)
	}

	dst := image.NewRGBA(image.Rect(0, 0,
		int(float64(width)*scale), int(float64(height)*scale)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	thumbWeb := ThumbnailWebPath(webImagePath)
	thumbResolved, err := s.resolver.Resolve(thumbWeb)
	if err != nil {
		return "", err
	}

	out, err := os.OpenFile(thumbResolved, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create thumbnail: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, dst, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}

	return thumbWeb, nil
}

// ThumbnailWebPath derives the thumbnail path from a photo path, e.g.
// "/images/vehicles/ranger.jpg" -> "/images/vehicles/ranger-tn.jpg".
func ThumbnailWebPath(webImagePath string) string {
	ext := path.Ext(webImagePath)
	return strings.TrimSuffix(webImagePath, ext) + "-tn.jpg"
}
