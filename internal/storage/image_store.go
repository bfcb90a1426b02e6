package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ImageStore abstrae dónde se guardan las imágenes de perfil.
type ImageStore interface {
	// Save persiste el contenido y devuelve la referencia a almacenar en el
	// registro de usuario.
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
	// URL devuelve una URL servible para una referencia guardada.
	URL(ctx context.Context, ref string) (string, error)
}

// DiskImageStore guarda imágenes en un directorio local con nombre único.
type DiskImageStore struct {
	dir string
}

func NewDiskImageStore(dir string) (*DiskImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskImageStore{dir: dir}, nil
}

func (s *DiskImageStore) Save(_ context.Context, originalName string, content io.Reader) (string, error) {
	name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(originalName))
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, content); err != nil {
		return "", err
	}
	return name, nil
}

func (s *DiskImageStore) URL(_ context.Context, ref string) (string, error) {
	return "/uploads/" + ref, nil
}

// S3ImageStore guarda imágenes en un bucket S3-compatible (MinIO incluido).
type S3ImageStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

type S3Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

func NewS3ImageStore(ctx context.Context, opts S3Options) (*S3ImageStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3ImageStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  opts.Bucket,
	}, nil
}

func (s *S3ImageStore) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	d := time.Now()
	key := fmt.Sprintf("profiles/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(originalName))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   content,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *S3ImageStore) URL(ctx context.Context, ref string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &ref,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
