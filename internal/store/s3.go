package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"una-go/internal/config"
	"una-go/internal/una"
)

// S3Store keeps the archive as a single JSON object in an S3 bucket, for
// running the archiver on hosts with no durable local disk. S3 PUTs replace
// the object atomically, so the no-partial-write guarantee holds here too.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	key      string
}

// NewS3Store creates a store for the configured bucket and object key.
// Credentials come from the config when set, otherwise from the default AWS
// credential chain.
func NewS3Store(ctx context.Context, cfg config.StoreConfig) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.S3Bucket,
		key:      cfg.S3Key,
	}, nil
}

// Load fetches and parses the archive object. Returns (nil, nil) when the
// object does not exist yet.
func (s *S3Store) Load() (*una.NotesDocument, error) {
	out, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: fetching s3://%s/%s: %v", una.ErrStorageUnavailable, s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading s3://%s/%s: %v", una.ErrStorageUnavailable, s.bucket, s.key, err)
	}

	var doc una.NotesDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing s3://%s/%s: %v", una.ErrStorageUnavailable, s.bucket, s.key, err)
	}
	return &doc, nil
}

// Save uploads the archive, replacing the previous object.
func (s *S3Store) Save(doc *una.NotesDocument) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encoding archive: %v", una.ErrStorageUnavailable, err)
	}

	_, err = s.uploader.Upload(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("%w: uploading s3://%s/%s: %v", una.ErrStorageUnavailable, s.bucket, s.key, err)
	}
	return nil
}

// Compile-time check that S3Store implements una.ArchiveStore
var _ una.ArchiveStore = (*S3Store)(nil)
