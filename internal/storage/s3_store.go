package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"microarchive/internal/archive"
)

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// ImageServerURL is the IIIF image server the bucket is published through.
	ImageServerURL string
}

// S3Store is an ObjectStore backed by an S3 compatible bucket.
type S3Store struct {
	client *minio.Client
	bucket string
	images ImageURLs
}

func NewS3Store(cfg S3Config) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey), ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Store{
		client: client,
		bucket: bucket,
		images: ImageURLs{ServerURL: cfg.ImageServerURL},
	}, nil
}

func (s *S3Store) ListItems(ctx context.Context, prefix string) ([]archive.Item, error) {
	items := make([]archive.Item, 0, 32)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, obj.Err)
		}
		if item, ok := s.images.itemFromKey(obj.Key, prefix); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *S3Store) Upload(ctx context.Context, name, origin string, files SiteFiles, meta map[string]any) error {
	origin = originPath(origin)

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	if err := s.put(ctx, path.Join(origin, MetaFile), "application/json", data, false); err != nil {
		return err
	}

	for _, obj := range files.objects(name) {
		if err := s.put(ctx, path.Join(origin, obj.name), obj.contentType, []byte(obj.body), true); err != nil {
			return err
		}
	}
	return nil
}

func (s *S3Store) put(ctx context.Context, key, contentType string, content []byte, public bool) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if public {
		opts.UserMetadata = map[string]string{"x-amz-acl": "public-read"}
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(content), int64(len(content)), opts)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) GetMetadata(ctx context.Context, origin string) (map[string]any, error) {
	key := path.Join(originPath(origin), MetaFile)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, notFound(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, notFound(err)
	}

	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return meta, nil
}

func (s *S3Store) Exists(ctx context.Context, origin, name string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, path.Join(originPath(origin), name), minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if err = notFound(err); errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Ping checks that the bucket is reachable.
func (s *S3Store) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

func notFound(err error) error {
	errResp := minio.ToErrorResponse(err)
	if errResp.Code == "NoSuchKey" || errResp.Code == "NoSuchBucket" {
		return ErrNotFound
	}
	return err
}
