package image

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"

	"smart-pantry-chef/internal/pkg/common"
)

// Info upload metadata. Recognized is false when the bytes are not a decodable
// jpeg, png, gif or webp; ContentType is then sniffed from the content.
type Info struct {
	Format      string
	ContentType string
	Recognized  bool
	Width       int
	Height      int
	Size        int
}

var contentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Service inspects uploads before they are forwarded for classification
type Service struct {
	maxSizeBytes int64
}

// NewService creates an upload inspection service
func NewService(maxSizeBytes int64) *Service {
	return &Service{
		maxSizeBytes: maxSizeBytes,
	}
}

// Validate rejects empty or oversized uploads. Anything else is accepted; only the
// image header is decoded.
func (s *Service) Validate(data []byte) (*Info, error) {
	if len(data) == 0 {
		return nil, invalidImage("uploaded file is empty", nil)
	}

	if int64(len(data)) > s.maxSizeBytes {
		return nil, invalidImage(fmt.Sprintf("image size exceeds maximum limit of %d bytes", s.maxSizeBytes), nil)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if contentType, ok := contentTypes[format]; err == nil && ok {
		return &Info{
			Format:      format,
			ContentType: contentType,
			Recognized:  true,
			Width:       cfg.Width,
			Height:      cfg.Height,
			Size:        len(data),
		}, nil
	}

	mtype := mimetype.Detect(data)
	return &Info{
		Format:      strings.TrimPrefix(mtype.Extension(), "."),
		ContentType: mtype.String(),
		Size:        len(data),
	}, nil
}

func invalidImage(message string, err error) error {
	return common.NewError(common.ErrCodeInvalidImage, message, http.StatusBadRequest, err)
}
