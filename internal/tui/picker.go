// internal/tui/picker.go
//
// Terminal stand-in for a gallery picker: the user types a local path,
// the picker loads it. Images and documents become base64 data URIs for
// inline upload; videos stay on disk and upload by streaming.

package tui

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/propseller/propseller/internal/media"
)

type pathPicker struct {
	// path is set from the upload input right before a pick; "" means
	// the user backed out.
	path string
}

func (p *pathPicker) Pick(category media.Category) (*media.Selection, error) {
	path := strings.TrimSpace(p.path)
	if path == "" {
		return nil, nil
	}
	if category == media.CategoryVideo {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("tui: video not readable: %w", err)
		}
		return &media.Selection{Path: path}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tui: read media: %w", err)
	}
	return &media.Selection{
		Path:    path,
		DataURI: fmt.Sprintf("data:%s;base64,%s", mimeFor(path), base64.StdEncoding.EncodeToString(data)),
	}, nil
}

func mimeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".pdf":
		return "application/pdf"
	default:
		return "image/jpeg"
	}
}
