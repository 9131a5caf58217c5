package helpers

import (
	"encoding/base64"
	"errors"
	"strings"
)

// MaxImageBytes caps decoded profile images.
const MaxImageBytes = 5 << 20

var ErrInvalidDataURL = errors.New("invalid image data url")

// imageExts lists the accepted media types and their object name extensions.
var imageExts = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DataURL is a decoded base64 image data URL.
type DataURL struct {
	MediaType string
	Data      []byte
}

func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// ParseImageDataURL decodes "data:image/<type>[;params];base64,<payload>".
// Only PNG, JPEG, GIF and WebP are accepted.
func ParseImageDataURL(s string) (*DataURL, error) {
	if !IsDataURL(s) {
		return nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, ErrInvalidDataURL
	}
	mediaType, _, _ := strings.Cut(strings.TrimSuffix(meta, ";base64"), ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if _, ok := imageExts[mediaType]; !ok {
		return nil, ErrInvalidDataURL
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+2 {
		return nil, ErrInvalidDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 || len(data) > MaxImageBytes {
		return nil, ErrInvalidDataURL
	}
	return &DataURL{MediaType: mediaType, Data: data}, nil
}

// Ext maps the media type to a file extension for object names.
func (d *DataURL) Ext() string {
	return imageExts[d.MediaType]
}
