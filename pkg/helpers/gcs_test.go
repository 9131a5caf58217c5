package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Requirement: only URLs inside the configured bucket map back to an object name.
func TestObjectPath(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		want   string
		wantOK bool
	}{
		{"uploaded avatar", "https://storage.googleapis.com/shop/avatars/u1/a.png", "avatars/u1/a.png", true},
		{"other bucket", "https://storage.googleapis.com/other/avatars/u1/a.png", "", false},
		{"bucket name prefix", "https://storage.googleapis.com/shopping/a.png", "", false},
		{"bucket root", "https://storage.googleapis.com/shop/", "", false},
		{"external url", "https://cdn.example.com/a.png", "", false},
		{"empty", "", "", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := ObjectPath("shop", test.ref)
			assert.Equal(t, test.wantOK, ok)
			assert.Equal(t, test.want, got)
		})
	}
}
