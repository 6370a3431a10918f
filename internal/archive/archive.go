package archive

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client archives accepted call recordings to an S3 bucket. Archival is
// best-effort: the transcription pipeline proceeds whether or not the copy
// lands.
type Client struct {
	client  *s3.Client
	bucket  string
	timeout time.Duration
}

func NewClient(ctx context.Context, region, endpoint, accessKey, secretKey, bucket string, timeout time.Duration) (*Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if accessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		client:  client,
		bucket:  bucket,
		timeout: timeout,
	}, nil
}

// StoreFile copies a staged recording into the archive bucket under a
// timestamped key.
func (c *Client) StoreFile(ctx context.Context, filename, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open staged audio: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	putCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	key := fmt.Sprintf("calls/%d-%s", time.Now().Unix(), filename)
	_, err = c.client.PutObject(putCtx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("failed to archive audio to S3: %w", err)
	}

	return nil
}
