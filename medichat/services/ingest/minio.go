package ingest

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"medichat/medichat/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOSource pulls hospital documents from an object-store bucket, for
// deployments where source documents are not on local disk.
type MinIOSource struct {
	client *minio.Client
	bucket string
}

func NewMinIOSource(cfg config.Config) (*MinIOSource, error) {
	// Use insecure for local (no HTTPS)
	client, err := minio.New(
		cfg.MinIOEndpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
			Secure: false,
		},
	)
	if err != nil {
		return nil, err
	}
	exists, err := client.BucketExists(context.Background(), cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(context.Background(), cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &MinIOSource{client: client, bucket: cfg.MinIOBucket}, nil
}

// LoadAll downloads every .txt/.md/.html object in the bucket and returns
// one text per document.
func (m *MinIOSource) LoadAll(ctx context.Context) ([]string, error) {
	var docs []string
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		ext := strings.ToLower(filepath.Ext(obj.Key))
		if ext != ".txt" && ext != ".md" && ext != ".html" {
			continue
		}
		r, err := m.client.GetObject(ctx, m.bucket, obj.Key, minio.GetObjectOptions{})
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return nil, err
		}
		text := string(data)
		if ext == ".html" {
			if text, err = ExtractHTMLText(text); err != nil {
				return nil, err
			}
		}
		docs = append(docs, text)
	}
	return docs, nil
}

// RunFromBucket is Run with the bucket as document source.
func RunFromBucket(ctx context.Context, src *MinIOSource, outPath string) (int, error) {
	docs, err := src.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	return writeChunks(docs, outPath)
}
