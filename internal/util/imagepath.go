package util

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"go-dealership/internal/model"
)

// ImagePathResolver maps web image paths from inventory forms (e.g.
// "/images/vehicles/ranger.jpg") onto files under the public root. Form
// input reaches the filesystem through this and nothing else.
type ImagePathResolver struct {
	rootAbs string
}

func NewImagePathResolver(publicRoot string) (*ImagePathResolver, error) {
	if strings.TrimSpace(publicRoot) == "" {
		return nil, fmt.Errorf("public root cannot be empty")
	}

	rootAbs, err := filepath.Abs(publicRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve public root: %w", err)
	}

	return &ImagePathResolver{rootAbs: rootAbs}, nil
}

// Resolve turns a web path into an absolute filesystem path, refusing
// anything that would escape the public root or does not live under
// /images/.
func (v *ImagePathResolver) Resolve(webPath string) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(webPath), `\`, "/")
	if !strings.HasPrefix(normalized, "/images/") {
		return "", model.ErrInvalidInput
	}

	if strings.Contains(normalized, "\x00") || hasControlCharacters(normalized) {
		return "", model.ErrInvalidInput
	}

	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return "", model.ErrInvalidInput
		}
	}

	cleanRel := filepath.Clean(strings.TrimPrefix(normalized, "/"))
	resolved, err := filepath.Abs(filepath.Join(v.rootAbs, cleanRel))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	if !isWithinRoot(v.rootAbs, resolved) {
		return "", model.ErrInvalidInput
	}

	return resolved, nil
}

func hasControlCharacters(value string) bool {
	for _, char := range value {
		if unicode.IsControl(char) {
			return true
		}
	}

	return false
}

func isWithinRoot(rootAbs string, candidateAbs string) bool {
	if candidateAbs == rootAbs {
		return true
	}

	rootWithSeparator := rootAbs + string(filepath.Separator)
	return strings.HasPrefix(candidateAbs, rootWithSeparator)
}
