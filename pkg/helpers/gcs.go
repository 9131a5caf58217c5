package helpers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// UploadObject uploads bytes from r into bucket/objectPath with the provided contentType
func UploadObject(ctx context.Context, client *storage.Client, bucket, objectPath, contentType string, r io.Reader) (string, error) {
	wc := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // disable chunking for small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return PublicURL(bucket, objectPath), nil
}

// DeleteObject removes bucket/objectPath. A missing object is not an error.
func DeleteObject(ctx context.Context, client *storage.Client, bucket, objectPath string) error {
	err := client.Bucket(bucket).Object(objectPath).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return err
	}
	return nil
}

// PublicURL builds a public URL for an object (assuming public read access or signed URLs)
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}

// GCSImageStore moves data-URL profile images into a bucket and hands back their URL.
type GCSImageStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSImageStore(client *storage.Client, bucket string) *GCSImageStore {
	return &GCSImageStore{Client: client, Bucket: bucket}
}

// Store uploads ref when it is a data URL; any other reference is returned unchanged.
func (s *GCSImageStore) Store(ctx context.Context, userID, ref string) (string, error) {
	if !IsDataURL(ref) {
		return ref, nil
	}
	img, err := ParseImageDataURL(ref)
	if err != nil {
		return "", err
	}
	objectPath := path.Join("avatars", userID, uuid.NewString()+img.Ext())
	return UploadObject(ctx, s.Client, s.Bucket, objectPath, img.MediaType, bytes.NewReader(img.Data))
}

// ObjectPath returns the object name behind a PublicURL of bucket, or false for any other reference.
func ObjectPath(bucket, ref string) (string, bool) {
	prefix := PublicURL(bucket, "")
	if !strings.HasPrefix(ref, prefix) || len(ref) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(ref, prefix), true
}

// Remove deletes an uploaded avatar. References outside the bucket are ignored.
func (s *GCSImageStore) Remove(ctx context.Context, ref string) error {
	objectPath, ok := ObjectPath(s.Bucket, ref)
	if !ok {
		return nil
	}
	return DeleteObject(ctx, s.Client, s.Bucket, objectPath)
}
