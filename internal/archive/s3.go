package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"connectplus/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the subset of the S3 client the archiver needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver stores export snapshots in a bucket.
type S3Archiver struct {
	client PutObjectAPI
	bucket string
	prefix string
	now    func() time.Time
}

func NewS3Archiver(client PutObjectAPI, bucket, prefix string) *S3Archiver {
	return &S3Archiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
	}
}

// Key returns the object key for a snapshot of type t taken at at.
func Key(prefix string, t types.TransferType, at time.Time) string {
	name := fmt.Sprintf("connect-plus-%s-%s.json", t, at.UTC().Format("20060102T150405Z"))
	return path.Join(prefix, name)
}

// Put uploads snapshot and returns the object key it was written to.
func (a *S3Archiver) Put(ctx context.Context, snapshot *types.Snapshot) (string, error) {
	if a.bucket == "" {
		return "", fmt.Errorf("export bucket is not configured")
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := Key(a.prefix, snapshot.Type, a.now())

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot to s3://%s/%s: %w", a.bucket, key, err)
	}

	return key, nil
}
