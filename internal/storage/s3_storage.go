package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/pkg/logger"
)

const mapFolder = "maps"

// S3API is the subset of the S3 client used here
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage stores map images as objects under maps/<id>.jpg
type S3Storage struct {
	client  S3API
	bucket  string
	region  string
	baseURL string
}

func NewS3Storage(region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config
	var err error

	// static credentials when given, otherwise the default chain
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(region),
		)
		if err != nil {
			logger.Warn("Falling back to region-only AWS config", map[string]interface{}{
				"error": err.Error(),
			})
			cfg = aws.Config{
				Region: region,
			}
		}
	}

	return NewS3StorageWithClient(s3.NewFromConfig(cfg), region, bucket, baseURL)
}

func NewS3StorageWithClient(client S3API, region, bucket, baseURL string) *S3Storage {
	return &S3Storage{
		client:  client,
		bucket:  bucket,
		region:  region,
		baseURL: baseURL,
	}
}

// Key returns the object key for a cafe's map image
func (s *S3Storage) Key(cafeID uint) string {
	return fmt.Sprintf("%s/%s", mapFolder, model.MapKey(cafeID))
}

func (s *S3Storage) Save(ctx context.Context, cafeID uint, data []byte) error {
	key := s.Key(cafeID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload map image: %w", err)
	}

	logger.Debug("Map image uploaded", map[string]interface{}{
		"cafe_id": cafeID,
		"bucket":  s.bucket,
		"key":     key,
		"bytes":   len(data),
	})
	return nil
}

func (s *S3Storage) URL(cafeID uint) string {
	key := s.Key(cafeID)
	if s.baseURL != "" {
		// CloudFront or custom domain
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
