package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	appconfig "linkup/backend/internal/config"
	"linkup/backend/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ImageStore persists uploaded images in an S3 bucket and hands back public
// URLs. Clients submit images as data URLs (base64), matching the frontend's
// upload format.
type ImageStore struct {
	client *s3.Client
	bucket string
	public string
}

// NewImageStore builds an ImageStore from the ambient AWS config.
func NewImageStore(ctx context.Context) (*ImageStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &ImageStore{
		client: s3.NewFromConfig(cfg),
		bucket: appconfig.AppConfig.S3Bucket,
		public: strings.TrimSuffix(appconfig.AppConfig.S3PublicURL, "/"),
	}, nil
}

// Upload decodes a data URL, stores it under a fresh key and returns the
// public URL of the object.
func (s *ImageStore) Upload(ctx context.Context, folder, dataURL string) (string, error) {
	contentType, data, err := decodeDataURL(dataURL)
	if err != nil {
		return "", err
	}

	ext := "bin"
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	key := fmt.Sprintf("%s/%s.%s", folder, uuid.New().String(), ext)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return s.public + "/" + key, nil
}

// Delete removes a previously uploaded object by its public URL. Best
// effort: a replaced avatar that cannot be deleted is only logged.
func (s *ImageStore) Delete(ctx context.Context, publicURL string) {
	key := strings.TrimPrefix(publicURL, s.public+"/")
	if key == publicURL || key == "" {
		// Not one of ours.
		return
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to delete stored image")
	}
}

func decodeDataURL(dataURL string) (string, []byte, error) {
	// Expected form: data:image/png;base64,<payload>
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data URL")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URL")
	}

	contentType := strings.TrimSuffix(meta, ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode image payload: %w", err)
	}
	return contentType, data, nil
}
