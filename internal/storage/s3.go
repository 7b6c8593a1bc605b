package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is a client for S3-compatible storage holding the static
// trip data objects (trip config, booked itinerary, suggested days).
type ObjectStore struct {
	client *minio.Client
}

// NewObjectStore connects to a MinIO/S3 endpoint with static
// credentials.
func NewObjectStore(endpoint, accessKey, secretKey string, useSSL bool) (*ObjectStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create client for %s: %w", endpoint, err)
	}
	return &ObjectStore{client: client}, nil
}

// GetJSON fetches an object and decodes it into v, streaming straight
// from the response body.
func (s *ObjectStore) GetJSON(ctx context.Context, bucket, key string, v any) error {
	object, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("storage: get %s/%s: %w", bucket, key, err)
	}
	defer object.Close()

	if err := json.NewDecoder(object).Decode(v); err != nil {
		return fmt.Errorf("storage: decode %s/%s: %w", bucket, key, err)
	}
	return nil
}
