package services

import (
	"context"
	"log"
	"strings"

	appconfig "api/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// PhotoStorage removes hosted photo blobs. Dish deletion treats removal as
// best-effort: a storage failure is logged and never blocks the row delete.
type PhotoStorage interface {
	RemovePhotos(ctx context.Context, urls []string) error
}

// Storage is the process-wide photo storage client. Nil (e.g. in tests, or
// when S3 is not configured) disables blob cleanup.
var Storage PhotoStorage

// S3PhotoStorage deletes photo objects from an S3-compatible bucket
type S3PhotoStorage struct {
	client    *s3.Client
	bucket    string
	urlPrefix string
}

// InitPhotoStorage wires the global Storage client from the environment.
// Without credentials the client stays nil and cleanup is skipped.
func InitPhotoStorage() {
	if appconfig.S3AccessKey == "" || appconfig.PhotoPublicURL == "" {
		log.Println("Photo storage not configured, blob cleanup disabled")
		return
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(appconfig.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			appconfig.S3AccessKey,
			appconfig.S3SecretKey,
			"",
		)))
	if err != nil {
		log.Println("Failed to load S3 configuration, blob cleanup disabled: ", err)
		return
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if appconfig.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(appconfig.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	Storage = &S3PhotoStorage{
		client:    client,
		bucket:    appconfig.S3Bucket,
		urlPrefix: strings.TrimSuffix(appconfig.PhotoPublicURL, "/") + "/",
	}
}

// RemovePhotos batch-deletes the objects behind the given public URLs.
// URLs outside the known prefix are ignored.
func (s *S3PhotoStorage) RemovePhotos(ctx context.Context, urls []string) error {
	var objects []types.ObjectIdentifier
	for _, url := range urls {
		if !strings.HasPrefix(url, s.urlPrefix) {
			continue
		}
		key := strings.TrimPrefix(url, s.urlPrefix)
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
	}
	if len(objects) == 0 {
		return nil
	}

	_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{Objects: objects},
	})
	return err
}
