// Package store reads gamelogs from and writes finished videos to the
// S3-compatible object store.
package store

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config locates the object store and its bucket.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

// Store is the object storage client.
type Store struct {
	client *minio.Client
	bucket string
}

// New connects to the configured S3-compatible endpoint.
func New(cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("object store client: %w", err)
	}
	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// FetchGamelog downloads the raw gamelog for a game. A failure here is
// fatal to the render: there is nothing to draw without the log.
func (s *Store) FetchGamelog(ctx context.Context, gameID int) ([]byte, error) {
	key := gamelogKey(gameID)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// PutVideo uploads a finished round video from the local path.
func (s *Store) PutVideo(ctx context.Context, gameID, roundID int, path string) error {
	key := videoKey(gameID, roundID)
	_, err := s.client.FPutObject(ctx, s.bucket, key, path, minio.PutObjectOptions{
		ContentType: "video/mp4",
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

func gamelogKey(gameID int) string {
	return fmt.Sprintf("gamelogs/%d.gamelog", gameID)
}

func videoKey(gameID, roundID int) string {
	return fmt.Sprintf("renders/%d_%d.mp4", gameID, roundID)
}
