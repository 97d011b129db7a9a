package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client the store uses
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Config describes an S3-compatible bucket
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // empty for AWS, set for R2, MinIO and friends
	AccessKey string
	SecretKey string
	Prefix    string
	PublicURL string // base URL objects are served from; s3:// URIs when empty
}

// S3Store keeps thumbnails in an object storage bucket
type S3Store struct {
	client S3API
	cfg    S3Config
}

// NewS3Client builds an S3 client with static credentials
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadAWS, err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewS3Store creates a store on the given client
func NewS3Store(client S3API, cfg S3Config) *S3Store {
	return &S3Store{client: client, cfg: cfg}
}

func (s *S3Store) Find(ctx context.Context, hash string) (string, bool, error) {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.cfg.Bucket),
		Prefix:  aws.String(objectKey(s.cfg.Prefix, hash+".")),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", ErrMsgListObjects, err)
	}
	if len(out.Contents) == 0 || out.Contents[0].Key == nil {
		return "", false, nil
	}
	return s.uri(*out.Contents[0].Key), true, nil
}

func (s *S3Store) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := objectKey(s.cfg.Prefix, name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(DetectContentType(contentType, data)),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgPutObject, err)
	}
	return s.uri(key), nil
}

func (s *S3Store) uri(key string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimRight(s.cfg.PublicURL, "/") + "/" + key
	}
	return fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, key)
}

func objectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return strings.Trim(prefix, "/") + "/" + name
}
