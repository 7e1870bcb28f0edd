package objectstore

import (
	"context"
	"io"
)

type Uploader interface {
	Upload(ctx context.Context, file io.Reader, bucket, key, contentType string) (string, error)
}

type Downloader interface {
	Download(ctx context.Context, bucket, key string) ([]byte, error)
}

type FileStorer interface {
	Uploader
	Downloader
}
