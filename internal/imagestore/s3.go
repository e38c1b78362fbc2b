// Package imagestore archives uploaded leaf images to S3 so flagged
// predictions can be reviewed later. Archiving is best effort; a failed
// upload never fails the prediction request.
package imagestore

import (
	"bytes"
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Store struct {
	client *s3.Client
	bucket string
	log    *logrus.Logger
}

// New returns nil (archiving disabled) when no bucket is configured.
func New(ctx context.Context, region, bucket string, log *logrus.Logger) *Store {
	if bucket == "" {
		return nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		log.WithError(err).Warn("aws config load failed, image archive disabled")
		return nil
	}

	return &Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		log:    log,
	}
}

// Save uploads the image under a fresh uuid key and returns the key.
func (s *Store) Save(ctx context.Context, data []byte, contentType string) (string, error) {
	if s == nil {
		return "", nil
	}

	key := fmt.Sprintf("uploads/%s.jpg", uuid.NewString())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive image: %w", err)
	}

	return key, nil
}
