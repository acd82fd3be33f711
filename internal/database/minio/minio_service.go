package minio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/S6-InstaClone/AccountService/internal/config"
)

// ProfilePictureBucket holds every uploaded profile picture. It is public
// read-only so picture URLs can be served to clients directly.
const ProfilePictureBucket = "profile-pictures"

// IPictureStorage stores profile picture bytes and removes them again by the
// URL that was handed out on upload.
type IPictureStorage interface {
	UploadPicture(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error)
	DeletePicture(ctx context.Context, pictureURL string) error
}

type MinioClient struct {
	client      *minio.Client
	resourceURL string
}

func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	isSecure, err := strconv.ParseBool(cfg.MinioSecure)
	if err != nil {
		log.Printf("Invalid value for MinIO secure flag: %v. Defaulting to false.", err)
		isSecure = false
	}
	minioClient, err := minio.New(cfg.MinioUrl, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: isSecure,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to MinIO: %w", err)
	}

	if err := ensureBucket(minioClient, ProfilePictureBucket, cfg.MinioLocation); err != nil {
		return nil, err
	}

	if err := setPublicBucketPolicy(minioClient, ProfilePictureBucket); err != nil {
		log.Printf("Failed to set public policy for %s bucket: %v", ProfilePictureBucket, err)
		return nil, err
	}

	return &MinioClient{
		client:      minioClient,
		resourceURL: cfg.MinioResourceUrl,
	}, nil
}

// UploadPicture stores the picture bytes and returns the public URL clients
// use to fetch it.
func (mc *MinioClient) UploadPicture(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := mc.client.PutObject(ctx, ProfilePictureBucket, objectName, reader, size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload picture %s: %w", objectName, err)
	}
	return mc.resourceURL + ProfilePictureBucket + "/" + objectName, nil
}

// DeletePicture removes a previously uploaded picture by its public URL.
// URLs that were not issued by this storage are rejected.
func (mc *MinioClient) DeletePicture(ctx context.Context, pictureURL string) error {
	objectName, err := mc.objectNameFromURL(pictureURL)
	if err != nil {
		return err
	}
	if err := mc.client.RemoveObject(ctx, ProfilePictureBucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		log.Printf("failed to delete picture from minio: %v", err)
		return fmt.Errorf("failed to delete picture %s: %w", objectName, err)
	}
	log.Printf("picture deleted successfully from minio: %s", objectName)
	return nil
}

func (mc *MinioClient) objectNameFromURL(pictureURL string) (string, error) {
	prefix := mc.resourceURL + ProfilePictureBucket + "/"
	if pictureURL == "" || !strings.HasPrefix(pictureURL, prefix) {
		return "", fmt.Errorf("picture url %q does not belong to this storage", pictureURL)
	}
	objectName := strings.TrimPrefix(pictureURL, prefix)
	if objectName == "" {
		return "", fmt.Errorf("picture url %q has no object name", pictureURL)
	}
	return objectName, nil
}

func setPublicBucketPolicy(minioClient *minio.Client, bucketName string) error {
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Action":    []string{"s3:GetObject"},
				"Effect":    "Allow",
				"Principal": map[string]any{"AWS": []string{"*"}},
				"Resource":  []string{fmt.Sprintf("arn:aws:s3:::%s/*", bucketName)},
			},
		},
	}

	policyBytes, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("error marshalling policy: %w", err)
	}

	if err := minioClient.SetBucketPolicy(context.Background(), bucketName, string(policyBytes)); err != nil {
		return fmt.Errorf("error setting bucket policy: %w", err)
	}
	return nil
}

// Ensure bucket exists or create it
func ensureBucket(client *minio.Client, bucketName, location string) error {
	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		log.Printf("error checking bucket existence: %v", err)
		return err
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
			log.Printf("error creating bucket: %v", err)
			return err
		}
		log.Printf("Bucket created successfully %s", bucketName)
	}

	return nil
}
