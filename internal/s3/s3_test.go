package s3_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerai/internal/s3"
)

func setUpS3(t *testing.T) (*s3.FileStore, string) {
	t.Helper()

	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	bucket := os.Getenv("MINIO_BUCKET")

	if endpoint == "" || accessKey == "" || secretKey == "" {
		t.Skip("MinIO configuration not set (MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY), skipping integration test")
	}

	if bucket == "" {
		bucket = "resume-bucket"
	}

	store, err := s3.NewFileStore(context.Background(), s3.S3Config{
		EndpointURL: endpoint,
		Region:      "us-east-1",
		AccessKey:   accessKey,
		SecretKey:   secretKey,
	})
	if err != nil {
		t.Fatalf("failed creating FileStore: %v", err)
	}

	return store, bucket
}

func TestUploadThenDownload(t *testing.T) {
	store, bucket := setUpS3(t)
	ctx := context.Background()

	content := []byte("%PDF-1.4\n%resume fixture\n%%EOF")
	key := "resumes/" + uuid.New().String() + ".pdf"

	location, err := store.Upload(ctx, bytes.NewReader(content), bucket, key, "application/pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, location)

	got, err := store.Download(ctx, bucket, key)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestUploadInvalidBucket(t *testing.T) {
	store, _ := setUpS3(t)

	_, err := store.Upload(context.Background(), bytes.NewReader([]byte("%PDF-1.4")), "non-existent-bucket-"+uuid.New().String(), "file.pdf", "application/pdf")
	assert.Error(t, err)
}

func TestDownloadMissingKey(t *testing.T) {
	store, bucket := setUpS3(t)

	_, err := store.Download(context.Background(), bucket, "missing/"+uuid.New().String()+".pdf")
	assert.Error(t, err)
}
