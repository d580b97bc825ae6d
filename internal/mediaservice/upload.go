package mediaservice

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	uploadContentType = "image/jpeg"
	uploadExpiry      = 1000 * time.Second
)

// MediaService hands out short-lived pre-signed PUT URLs so clients upload
// banners and images straight to the bucket without the upload body ever
// passing through this server.
type MediaService struct {
	bucket  string
	presign *s3.PresignClient
}

func NewMediaService(ctx context.Context, region, bucket, accessKey, secretKey string) (*MediaService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return &MediaService{
		bucket:  bucket,
		presign: s3.NewPresignClient(s3.NewFromConfig(cfg)),
	}, nil
}

// UploadURL generates a fresh object key and returns a pre-signed PUT URL
// for it.
func (s *MediaService) UploadURL(ctx context.Context) (string, error) {
	key, err := uploadKey()
	if err != nil {
		return "", err
	}

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(uploadContentType),
	}, s3.WithPresignExpires(uploadExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func uploadKey() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%d.jpeg", id, time.Now().UnixMilli()), nil
}
