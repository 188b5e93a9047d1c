// Package publish uploads a rendered songbook to S3 so it can be served as
// a static site.
package publish

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type objectPutter interface {
	PutObject(*s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

// Publisher mirrors an output directory into a bucket, key per file. With
// DryRun set it only logs what it would upload.
type Publisher struct {
	Bucket string
	Prefix string
	DryRun bool
	Logger *slog.Logger
	client objectPutter
}

func New(bucket, region string, logger *slog.Logger) (*Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("creating AWS session: %w", err)
	}
	return &Publisher{Bucket: bucket, Logger: logger, client: s3.New(sess)}, nil
}

func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".json":
		return "application/json"
	case ".pdf":
		return "application/pdf"
	case ".mid", ".midi":
		return "audio/midi"
	default:
		return "application/octet-stream"
	}
}

// PublishDir walks root and uploads every file under it, keyed by its
// slash-separated path relative to root.
func (p *Publisher) PublishDir(root string) error {
	var count int
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if p.Prefix != "" {
			key = strings.TrimSuffix(p.Prefix, "/") + "/" + key
		}
		if err := p.publishFile(path, key); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return err
	}
	p.Logger.Info("publish complete", "files", count, "bucket", p.Bucket, "dry_run", p.DryRun)
	return nil
}

func (p *Publisher) publishFile(path, key string) error {
	if p.DryRun {
		p.Logger.Info("would upload", "key", key, "bucket", p.Bucket)
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	p.Logger.Info("uploading", "key", key, "bucket", p.Bucket)
	_, err = p.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(p.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(key)),
	})
	if err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}
