package helpers

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requirement: only base64 PNG, JPEG, GIF or WebP data URLs within the size cap are accepted.
func TestParseImageDataURL(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	enc := base64.StdEncoding.EncodeToString(png)
	tooBig := base64.StdEncoding.EncodeToString(make([]byte, MaxImageBytes+1))

	tests := []struct {
		name    string
		in      string
		wantErr bool
		wantExt string
	}{
		{"png", "data:image/png;base64," + enc, false, ".png"},
		{"jpeg uppercase type", "data:IMAGE/JPEG;base64," + enc, false, ".jpg"},
		{"with charset param", "data:image/webp;charset=binary;base64," + enc, false, ".webp"},
		{"not a data url", "https://cdn.example.com/a.png", true, ""},
		{"not base64", "data:image/png," + enc, true, ""},
		{"gif", "data:image/gif;base64," + enc, false, ".gif"},
		{"not an image", "data:text/plain;base64," + enc, true, ""},
		{"svg", "data:image/svg+xml;base64," + enc, true, ""},
		{"bmp", "data:image/bmp;base64," + enc, true, ""},
		{"bad payload", "data:image/png;base64,***", true, ""},
		{"empty payload", "data:image/png;base64,", true, ""},
		{"too big", "data:image/png;base64," + tooBig, true, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseImageDataURL(test.in)
			if test.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidDataURL))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, png, got.Data)
			assert.Equal(t, test.wantExt, got.Ext())
			assert.True(t, strings.HasPrefix(got.MediaType, "image/"))
		})
	}
}
