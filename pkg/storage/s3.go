package storage

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hashicorp/go-hclog"
)

// S3Config configures the S3 adapter.
type S3Config struct {
	// Endpoint is set for S3-compatible services such as MinIO.
	Endpoint              string `hcl:"endpoint,optional" yaml:"endpoint"`
	Region                string `hcl:"region" yaml:"region"`
	Bucket                string `hcl:"bucket" yaml:"bucket"`
	Prefix                string `hcl:"prefix,optional" yaml:"prefix"`
	AccessKey             string `hcl:"key,optional" yaml:"key"`
	SecretKey             string `hcl:"secret,optional" yaml:"secret"`
	InsecureSkipVerify    bool   `hcl:"insecure_skip_verify,optional" yaml:"insecure_skip_verify"`
	RequestTimeoutSeconds int    `hcl:"request_timeout_seconds,optional" yaml:"request_timeout_seconds"`
}

// Validate validates the S3 configuration.
func (c *S3Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	return nil
}

// SetDefaults sets default values for optional configuration fields.
func (c *S3Config) SetDefaults() {
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = 30
	}
}

// S3 stores files as objects of a bucket.
type S3 struct {
	client *s3.Client
	cfg    *S3Config
	logger hclog.Logger
}

var _ Storage = (*S3)(nil)

// NewS3 creates an S3 storage adapter.
func NewS3(ctx context.Context, cfg *S3Config, log hclog.Logger) (*S3, error) {
	if cfg == nil {
		return nil, errors.New("s3 config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid S3 configuration: %w", err)
	}
	cfg.SetDefaults()

	if log == nil {
		log = hclog.NewNullLogger()
	}

	awsCfg, err := createAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// Force path-style addressing for MinIO
			o.UsePathStyle = true
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	log.Info("S3 storage initialized",
		"bucket", cfg.Bucket,
		"prefix", cfg.Prefix,
		"endpoint", cfg.Endpoint)

	return &S3{
		client: client,
		cfg:    cfg,
		logger: log.Named("storage"),
	}, nil
}

// createAWSConfig creates AWS SDK configuration from S3 config. The HTTP
// client must stay buildable so the SDK can add a custom CA bundle.
func createAWSConfig(ctx context.Context, cfg *S3Config) (aws.Config, error) {
	httpClient := awshttp.NewBuildableClient().
		WithTimeout(time.Duration(cfg.RequestTimeoutSeconds) * time.Second).
		WithTransportOptions(func(tr *http.Transport) {
			if tr.TLSClientConfig == nil {
				tr.TLSClientConfig = &tls.Config{}
			}
			tr.TLSClientConfig.InsecureSkipVerify = cfg.InsecureSkipVerify
		})

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
		config.WithHTTPClient(httpClient),
	}

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	return config.LoadDefaultConfig(ctx, opts...)
}

func (s *S3) key(name string) string {
	if s.cfg.Prefix == "" {
		return name
	}
	return path.Join(strings.TrimSuffix(s.cfg.Prefix, "/"), name)
}

func (s *S3) Put(ctx context.Context, name string, content []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(name)),
		Body:   bytes.NewReader(content),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to put object to S3: %w", err)
	}

	s.logger.Debug("stored object", "bucket", s.cfg.Bucket, "key", s.key(name), "size", len(content))
	return nil
}

func (s *S3) Get(ctx context.Context, name string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer result.Body.Close()

	content, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object content: %w", err)
	}
	return content, nil
}

func (s *S3) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from S3: %w", err)
	}
	return nil
}

func (s *S3) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(name)),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to head object in S3: %w", err)
}

func (s *S3) Adapter() string {
	return AdapterS3
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}
