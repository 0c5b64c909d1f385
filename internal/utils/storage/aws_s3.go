package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"io"
	"mime/multipart"
	"path"
	"slices"
)

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/webp", "image/heic"}

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFileTooLarge       = errors.New("file too large")
)

const maxUploadSize = 10 << 20

type (
	AwsS3 interface {
		// UploadFile stores file under folder/fileName and returns the object
		// key. The detected content type must be one of allowTypes when any
		// are given.
		UploadFile(fileName string, file *multipart.FileHeader, folder string, allowTypes ...string) (string, error)
		DeleteFile(objectKey string) error
		GetPublicLinkKey(objectKey string) string
	}

	S3Config struct {
		Bucket    string
		Region    string
		AccessKey string
		SecretKey string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3(ctx context.Context, cfg S3Config) (AwsS3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return &awsS3{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

func (a *awsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowTypes ...string) (string, error) {
	data, contentType, err := ReadFile(file, allowTypes...)
	if err != nil {
		return "", err
	}

	objectKey := path.Join(folder, fileName+extensionFor(contentType))
	_, err = a.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(objectKey string) error {
	_, err := a.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

// ReadFile reads an uploaded file and sniffs its content type.
func ReadFile(file *multipart.FileHeader, allowTypes ...string) ([]byte, string, error) {
	if file == nil {
		return nil, "", ErrFileTypeNotAllowed
	}
	if file.Size > maxUploadSize {
		return nil, "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, file.Size)
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		return nil, "", err
	}

	if len(data) > maxUploadSize {
		return nil, "", fmt.Errorf("%w: over %d bytes", ErrFileTooLarge, maxUploadSize)
	}

	detected := mimetype.Detect(data)
	contentType := detected.String()
	if len(allowTypes) > 0 {
		idx := slices.IndexFunc(allowTypes, detected.Is)
		if idx < 0 {
			return nil, "", fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, contentType)
		}
		contentType = allowTypes[idx]
	}
	return data, contentType, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/heic":
		return ".heic"
	default:
		return ""
	}
}
