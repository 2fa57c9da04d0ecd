package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores profile images in S3 and returns their public URLs.
type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string // CDN or bucket base URL
}

func NewUploader(ctx context.Context, region, bucket, publicURL string) (*Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("aws config load failed: %w", err)
	}
	return &Uploader{client: s3.NewFromConfig(cfg), bucket: bucket, publicURL: publicURL}, nil
}

// UploadProfileImage stores the image under a unique key and returns its URL.
func (u *Uploader) UploadProfileImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("profile-pictures/%d%s", time.Now().UnixNano(), path.Ext(filename))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("S3 upload error: %v", err)
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", u.publicURL, key), nil
}
