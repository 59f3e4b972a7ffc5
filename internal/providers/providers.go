package providers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// Image is a photograph attached to a request
type Image struct {
	Data     []byte
	MIMEType string
}

// Config represents the configuration for one vision request
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	Image       *Image
}

// Provider defines the interface for an LLM provider that can read images
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}

// Format returns the short image format of a MIME type ("image/png" -> "png")
func (i Image) Format() string {
	return strings.TrimPrefix(i.MIMEType, "image/")
}

// NewImage wraps raw image bytes, detecting the MIME type from the file name
// and falling back to content sniffing.
func NewImage(name string, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image %s is empty", name)
	}

	mime := mimeByExtension(filepath.Ext(name))
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("unsupported image type %q for %s", mime, name)
	}

	return &Image{Data: data, MIMEType: mime}, nil
}

func mimeByExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".webp":
		return "image/webp"
	}
	return ""
}
