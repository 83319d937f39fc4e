package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	PublicBase string
	PresignTTL time.Duration
}

// Client presigns uploads of listing images straight from the browser.
type Client struct {
	cfg     S3Config
	presign *s3.PresignClient
}

func NewClient(ctx context.Context, cfg S3Config) (*Client, error) {
	if cfg.Region == "" || cfg.Bucket == "" {
		return nil, errors.New("s3 region and bucket are required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Client{cfg: cfg, presign: s3.NewPresignClient(s3Client)}, nil
}

// PresignPut returns a URL the client can PUT the object to until the TTL expires.
func (c *Client) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	if c == nil {
		return "", errors.New("s3 client not initialized")
	}
	if key == "" {
		return "", errors.New("object key is required")
	}
	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}
	presigned, err := c.presign.PresignPutObject(ctx, input, func(po *s3.PresignOptions) {
		if c.cfg.PresignTTL > 0 {
			po.Expires = c.cfg.PresignTTL
		}
	})
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}

// PublicURL is where the object is served from once uploaded.
func (c *Client) PublicURL(key string) string {
	if c == nil || key == "" {
		return ""
	}
	if c.cfg.PublicBase != "" {
		return strings.TrimRight(c.cfg.PublicBase, "/") + "/" + key
	}
	return "https://" + c.cfg.Bucket + ".s3." + c.cfg.Region + ".amazonaws.com/" + key
}

func (c *Client) TTL() time.Duration {
	if c == nil || c.cfg.PresignTTL <= 0 {
		return 15 * time.Minute
	}
	return c.cfg.PresignTTL
}
