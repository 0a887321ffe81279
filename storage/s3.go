package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 stores blobs in a bucket under uploads/{kind}/{name} keys.
// Deployments using this backend front the bucket with a CDN mapped to
// the /uploads/* path, so recorded paths stay identical to the local
// backend's.
type S3 struct {
	client *s3.Client
	bucket string
}

func NewS3(ctx context.Context, bucket string) (*S3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &S3{client: s3.NewFromConfig(awsCfg), bucket: bucket}, nil
}

func (s *S3) Put(ctx context.Context, kind, originalName string, r io.Reader) (string, error) {
	name := blobName(originalName)
	key := "uploads/" + kind + "/" + name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("putting s3 object %s: %w", key, err)
	}

	return "/uploads/" + kind + "/" + name, nil
}

func (s *S3) Remove(ctx context.Context, relativePath string) error {
	key := objectKey(relativePath)
	if key == "" {
		return nil
	}

	// DeleteObject is idempotent; a missing key is not an error.
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String("uploads/" + key),
	})
	if err != nil {
		return fmt.Errorf("deleting s3 object %s: %w", key, err)
	}
	return nil
}
