package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sink stores an exported file and returns where it went.
type Sink interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// DirSink writes files into a local directory.
type DirSink struct {
	Dir string
}

func (s DirSink) Put(ctx context.Context, name, _ string, data []byte) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("export written")
	return path, nil
}

// WriterSink streams files to a writer, typically stdout.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	if _, err := s.W.Write(data); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return "-", nil
}

// S3API is the subset of the S3 client used by S3Sink.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads files under prefix/<uuid>/<name>.
type S3Sink struct {
	client S3API
	bucket string
	prefix string
	newID  func() string
}

func NewS3Sink(client S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		newID:  uuid.NewString,
	}
}

func (s *S3Sink) Key(id, name string) string {
	key := id + "/" + filepath.Base(name)
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	return key
}

func (s *S3Sink) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := s.Key(s.newID(), name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", filepath.Base(name))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}

	location := fmt.Sprintf("s3://%s/%s", s.bucket, key)
	zerolog.Ctx(ctx).Info().Str("location", location).Msg("export uploaded")
	return location, nil
}
