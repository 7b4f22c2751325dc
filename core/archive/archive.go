package archive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/omnivector-solutions/license-manager-sub000/core/storage"
)

// Archiver stores the raw license server output of each reconciliation
// tick, so a disputed reservation can be replayed against the text the
// agent actually saw.
type Archiver struct {
	client        storage.Client
	bucket        string
	retentionDays int
	log           *zap.Logger
}

func NewArchiver(client storage.Client, cfg storage.Config, log *zap.Logger) *Archiver {
	return &Archiver{
		client:        client,
		bucket:        cfg.Bucket,
		retentionDays: cfg.RetentionDays,
		log:           log,
	}
}

// EnsureBucket creates the archive bucket if it does not exist yet.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	if a == nil {
		return nil
	}
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create archive bucket: %w", err)
	}
	return nil
}

// Store uploads one raw server response under the tick's run ID. Failures
// are logged, never fatal: archival must not block reconciliation.
func (a *Archiver) Store(ctx context.Context, runID, name, raw string) {
	if a == nil {
		return
	}
	key := fmt.Sprintf("snapshots/%s/%s/%s.txt", time.Now().UTC().Format("2006-01-02"), runID, name)
	reader := strings.NewReader(raw)
	_, err := a.client.PutObject(ctx, a.bucket, key, reader, int64(len(raw)), minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	if err != nil {
		a.log.Warn("failed to archive server output", zap.String("key", key), zap.Error(err))
	}
}

// Prune removes snapshots older than the retention window.
func (a *Archiver) Prune(ctx context.Context) {
	if a == nil || a.retentionDays <= 0 {
		return
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -a.retentionDays)
	for object := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    "snapshots/",
		Recursive: true,
	}) {
		if object.Err != nil {
			a.log.Warn("failed to list archive", zap.Error(object.Err))
			return
		}
		if object.LastModified.After(cutoff) {
			continue
		}
		if err := a.client.RemoveObject(ctx, a.bucket, object.Key, minio.RemoveObjectOptions{}); err != nil {
			a.log.Warn("failed to prune archived output", zap.String("key", object.Key), zap.Error(err))
		}
	}
}
